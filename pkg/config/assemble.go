package config

// insertOption places an option value into a growing section document.
// Empty values are skipped. Repeated insertion of the same option
// accumulates when the stored value is already a sequence and
// overwrites when it is a scalar; the first insertion of a list option
// wraps the value as a singleton sequence.
func (c *Converter) insertOption(dst Map, section, option string, v Value) {
	if IsEmpty(v) {
		return
	}
	if current, ok := dst[option]; ok {
		if seq, isSeq := current.(Sequence); isSeq {
			dst[option] = append(seq, v)
		} else {
			dst[option] = v
		}
		return
	}
	if policy, ok := c.reg.Lookup(section); ok && policy.IsListOption(option) {
		dst[option] = Sequence{v}
	} else {
		dst[option] = v
	}
}

// insertSection places a completed section document into the output
// document according to the section's merge policy.
func (c *Converter) insertSection(dst Map, section string, data Map) {
	policy, known := c.reg.Lookup(section)
	if !known {
		// Unregistered sections behave as last-wins without the
		// diagnostic. Intentional asymmetry against the registered
		// "last" path, kept for output parity with the existing
		// tooling.
		dst[section] = data
		return
	}

	switch policy.Kind {
	case Duplicate:
		if current, ok := dst[section].(Sequence); ok {
			dst[section] = append(current, data)
		} else {
			dst[section] = Sequence{data}
		}
	case Merge:
		current, ok := dst[section].(Map)
		if !ok {
			dst[section] = data
			return
		}
		for option, v := range data {
			existing, present := current[option]
			if present && policy.IsListOption(option) {
				seq, _ := existing.(Sequence)
				add, _ := v.(Sequence)
				current[option] = append(seq, add...)
			} else {
				current[option] = v
			}
		}
	case Last:
		if _, ok := dst[section]; ok {
			c.log.Warn().Str("section", section).
				Msg("multiple sections in configuration, using only the last one")
		}
		dst[section] = data
	}
}
