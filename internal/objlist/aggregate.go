package objlist

// Flags are the list-wide on/off indicators shown above the object list.
type Flags struct {
	AllHidden    bool
	AllLocked    bool
	AllCollapsed bool
}

// Aggregate folds states into Flags. Each flag starts true, so an empty
// collection reports everything hidden, locked and collapsed.
func Aggregate(states []ObjectState, collapsed CollapsedMap) Flags {
	flags := Flags{AllHidden: true, AllLocked: true, AllCollapsed: true}
	for _, st := range states {
		flags.AllHidden = flags.AllHidden && st.Hidden
		flags.AllLocked = flags.AllLocked && st.Lock
		flags.AllCollapsed = flags.AllCollapsed && collapsed.Collapsed(st.ClientID)
	}
	return flags
}
