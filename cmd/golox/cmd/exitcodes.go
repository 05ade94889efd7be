package cmd

// Exit codes follow the sysexits.h convention the original loxo driver's
// main.py used per-stage exit statuses for (spec.md §6 calls distinct
// per-stage codes "recommended but not contractual"; golox implements them
// anyway).
const (
	exitUsage    = 64 // EX_USAGE: missing/extra command-line arguments
	exitDataErr  = 65 // EX_DATAERR: scanner or parser diagnostics
	exitSoftware = 70 // EX_SOFTWARE: resolver or runtime diagnostics
)
