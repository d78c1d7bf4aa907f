package editor

import "github.com/kobzarvs/vedit/internal/logger"

type command func(e *Editor) Outcome

var commands = map[string]command{
	"w":  (*Editor).cmdWrite,
	"q":  (*Editor).quit,
	"wq": (*Editor).cmdWriteQuit,
	"x":  (*Editor).cmdWriteQuit,
	"!q": (*Editor).cmdForceQuit,
	"q!": (*Editor).cmdForceQuit,
}

// commandEntry reads a ":" command and runs it. Esc discards the input.
func (e *Editor) commandEntry() Outcome {
	cmd, ok := e.prompt(":%s")
	if !ok {
		return OutcomeContinue
	}
	return e.execCommand(cmd)
}

// execCommand matches cmd exactly against the command table.
func (e *Editor) execCommand(cmd string) Outcome {
	run, ok := commands[cmd]
	if !ok {
		e.setStatus("Unknown command: %s", cmd)
		logger.Debug("unknown command", "cmd", cmd)
		return OutcomeContinue
	}
	return run(e)
}

func (e *Editor) cmdWrite() Outcome {
	e.save()
	return OutcomeContinue
}

func (e *Editor) cmdWriteQuit() Outcome {
	if !e.save() {
		return OutcomeContinue
	}
	return OutcomeExit
}

func (e *Editor) cmdForceQuit() Outcome {
	logger.Info("force quit", "dirty", e.buf.Dirty())
	return OutcomeExit
}
