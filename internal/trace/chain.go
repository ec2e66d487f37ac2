package trace

// Chain fans each event out to several hooks, in order. The returned
// continuation carries every hook's own continuation, so a hook that
// stops (returns nil) drops out of the chain without silencing the
// rest. nil hooks are skipped; an empty chain is nil.
func Chain(hooks ...Func) Func {
	live := make([]Func, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	return chain(live)
}

func chain(hooks []Func) Func {
	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	}
	return func(fr Frame, kind Kind, arg any) Func {
		next := make([]Func, 0, len(hooks))
		for _, h := range hooks {
			if cont := h(fr, kind, arg); cont != nil {
				next = append(next, cont)
			}
		}
		return chain(next)
	}
}
