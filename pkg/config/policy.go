package config

// PolicyKind states how repeated occurrences of a section combine.
type PolicyKind int

const (
	// Duplicate sections are independent: every occurrence becomes its
	// own entry in a sequence of section documents.
	Duplicate PolicyKind = iota
	// Merge sections are dependent: occurrences fold into one document,
	// with list options concatenated and the rest overwritten.
	Merge
	// Last sections keep only the final occurrence; earlier ones are
	// discarded with a warning.
	Last
)

func (k PolicyKind) String() string {
	switch k {
	case Duplicate:
		return "duplicate"
	case Merge:
		return "merge"
	case Last:
		return "last"
	default:
		return "unknown"
	}
}

// SectionPolicy describes the merge behavior of one section and the
// options that must always serialize as a sequence even when a single
// value is present.
type SectionPolicy struct {
	Kind        PolicyKind
	ListOptions []string
}

// IsListOption reports whether the named option is list valued for this
// section.
func (p SectionPolicy) IsListOption(option string) bool {
	for _, o := range p.ListOptions {
		if o == option {
			return true
		}
	}
	return false
}

// Registry is the closed catalogue of known section names. It is built
// once and safe for unsynchronized concurrent reads; conversion
// functions receive it explicitly instead of reaching for a global.
type Registry struct {
	sections map[string]SectionPolicy
}

// Lookup returns the policy for a section name. Absence is meaningful:
// unregistered sections fall back to implicit last-wins handling in the
// assembler.
func (r *Registry) Lookup(section string) (SectionPolicy, bool) {
	p, ok := r.sections[section]
	return p, ok
}

// Sections returns the registry covering every section the daemons
// understand.
func Sections() *Registry {
	return &Registry{sections: map[string]SectionPolicy{
		"active-response": {Kind: Duplicate},
		"command":         {Kind: Duplicate},
		"agentless":       {Kind: Duplicate},
		"localfile":       {Kind: Duplicate},
		"remote":          {Kind: Duplicate},
		"syslog_output":   {Kind: Duplicate},
		"integration":     {Kind: Duplicate},
		"labels":          {Kind: Duplicate, ListOptions: []string{"label"}},

		"alerts":          {Kind: Merge},
		"client":          {Kind: Merge},
		"database_output": {Kind: Merge},
		"email_alerts":    {Kind: Merge, ListOptions: []string{"email_to"}},
		"reports":         {Kind: Merge, ListOptions: []string{"email_to"}},
		"global":          {Kind: Merge, ListOptions: []string{"white_list"}},
		"open-scap":       {Kind: Merge, ListOptions: []string{"content"}},
		"cis-cat":         {Kind: Merge, ListOptions: []string{"content"}},
		"syscollector":    {Kind: Merge},
		"rootcheck": {Kind: Merge, ListOptions: []string{
			"rootkit_files", "rootkit_trojans", "windows_audit", "system_audit",
			"windows_apps", "windows_malware",
		}},
		"ruleset": {Kind: Merge, ListOptions: []string{
			"include", "rule", "rule_dir", "decoder", "decoder_dir", "list",
			"rule_exclude", "decoder_exclude",
		}},
		"syscheck": {Kind: Merge, ListOptions: []string{"directories", "ignore", "nodiff"}},
		"auth":     {Kind: Merge},
		"vulnerability-detector": {Kind: Merge, ListOptions: []string{"feed"}},
		"osquery":                {Kind: Merge, ListOptions: []string{"pack"}},
		"sca":                    {Kind: Merge, ListOptions: []string{"policies"}},

		"cluster": {Kind: Last, ListOptions: []string{"nodes"}},
	}}
}
