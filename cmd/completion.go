package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_qsandbox() {
    local cur prev words cword
    _init_completion || return

    local commands="levels encrypt decrypt save ls show open rm compare compact status shell keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$prev" in
        -level)
            COMPREPLY=($(compgen -W "L1 L2 L3 L4" -- "$cur"))
            return
            ;;
        -in|-out|-expected-file|-store)
            _filedir
            return
            ;;
    esac

    case "$cmd" in
        encrypt)
            COMPREPLY=($(compgen -W "-level -in -out -save -store -v" -- "$cur"))
            ;;
        decrypt)
            COMPREPLY=($(compgen -W "-level -in -out -v" -- "$cur"))
            ;;
        save)
            COMPREPLY=($(compgen -W "-level -label -in -store" -- "$cur"))
            ;;
        show|open|rm)
            local ids
            ids=$(qsandbox ls 2>/dev/null | awk 'NR>1 {print $1}')
            COMPREPLY=($(compgen -W "$ids" -- "$cur"))
            ;;
        ls|compact|status)
            COMPREPLY=($(compgen -W "-store" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "-profile save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _qsandbox qsandbox
`

const zshCompletion = `#compdef qsandbox

_qsandbox() {
    local -a commands
    commands=(
        'levels:List security levels'
        'encrypt:Encrypt a message into a package'
        'decrypt:Decrypt a package'
        'save:Save a package to the store'
        'ls:List saved packages'
        'show:Print a saved package'
        'open:Decrypt a saved package'
        'rm:Remove saved packages'
        'compare:Diff a decrypted package against expected text'
        'compact:Compact the package store'
        'status:Show package store status'
        'shell:Start an interactive sandbox session'
        'keyring:Manage the stored passphrase'
        'completion:Generate shell completions'
        'help:Show help for a command'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        encrypt)
            _arguments '-level[security level]:level:(L1 L2 L3 L4)' '-in[input file]:file:_files' '-out[output file]:file:_files' '-save[save with label]:label:' '-v[print operation log]'
            ;;
        decrypt)
            _arguments '-level[security level]:level:(L1 L2 L3 L4)' '-in[input file]:file:_files' '-out[output file]:file:_files' '-v[print operation log]'
            ;;
        keyring)
            _values 'action' save delete status
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        help)
            _describe 'command' commands
            ;;
    esac
}

_qsandbox "$@"
`

const fishCompletion = `complete -c qsandbox -f
complete -c qsandbox -n __fish_use_subcommand -a levels -d 'List security levels'
complete -c qsandbox -n __fish_use_subcommand -a encrypt -d 'Encrypt a message into a package'
complete -c qsandbox -n __fish_use_subcommand -a decrypt -d 'Decrypt a package'
complete -c qsandbox -n __fish_use_subcommand -a save -d 'Save a package to the store'
complete -c qsandbox -n __fish_use_subcommand -a ls -d 'List saved packages'
complete -c qsandbox -n __fish_use_subcommand -a show -d 'Print a saved package'
complete -c qsandbox -n __fish_use_subcommand -a open -d 'Decrypt a saved package'
complete -c qsandbox -n __fish_use_subcommand -a rm -d 'Remove saved packages'
complete -c qsandbox -n __fish_use_subcommand -a compare -d 'Diff a decrypted package against expected text'
complete -c qsandbox -n __fish_use_subcommand -a compact -d 'Compact the package store'
complete -c qsandbox -n __fish_use_subcommand -a status -d 'Show package store status'
complete -c qsandbox -n __fish_use_subcommand -a shell -d 'Start an interactive sandbox session'
complete -c qsandbox -n __fish_use_subcommand -a keyring -d 'Manage the stored passphrase'
complete -c qsandbox -n __fish_use_subcommand -a completion -d 'Generate shell completions'
complete -c qsandbox -n __fish_use_subcommand -a help -d 'Show help for a command'
complete -c qsandbox -n '__fish_seen_subcommand_from encrypt decrypt save compare' -o level -xa 'L1 L2 L3 L4'
complete -c qsandbox -n '__fish_seen_subcommand_from encrypt decrypt save' -o in -rF
complete -c qsandbox -n '__fish_seen_subcommand_from encrypt decrypt open' -o out -rF
complete -c qsandbox -n '__fish_seen_subcommand_from keyring' -a 'save delete status'
complete -c qsandbox -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
