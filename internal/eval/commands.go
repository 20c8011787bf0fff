package eval

import "github.com/numl-lang/numl/internal/value"

// registerCommands seeds the Command-word table (spec §3.3, §6):
// `clear` and `restart` are the two commands the core itself exposes.
func registerCommands(env *Env) {
	env.Commands["clear"] = func(ev *Evaluator, args []string) (value.Value, error) {
		ev.Clear(args...)
		return nil, nil
	}
	env.Commands["restart"] = func(ev *Evaluator, args []string) (value.Value, error) {
		ev.Restart()
		return nil, nil
	}
}
