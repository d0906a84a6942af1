package manifest

// Stage is a lifecycle function a manifest may provide a body for.
type Stage int

const (
	Configure Stage = iota
	Build
	Test
	Install
	PostInstall
	Uninstall
)

// Kind controls how a stage's commands are shown while they run.
type Kind int

const (
	// Normal commands are echoed only in verbose mode.
	Normal Kind = iota
	// Echo commands are always echoed.
	Echo
)

func (k Kind) String() string {
	if k == Echo {
		return "echo"
	}
	return "normal"
}

type stageInfo struct {
	name     string
	required bool
	kind     Kind
}

var registry = [...]stageInfo{
	Configure:   {name: "configure"},
	Build:       {name: "build"},
	Test:        {name: "test"},
	Install:     {name: "install", required: true},
	PostInstall: {name: "post_install", kind: Echo},
	Uninstall:   {name: "uninstall"},
}

// Stages returns every lifecycle stage in registry order.
func Stages() []Stage {
	stages := make([]Stage, len(registry))
	for i := range registry {
		stages[i] = Stage(i)
	}
	return stages
}

// LookupStage finds the stage with the given function name.
func LookupStage(name string) (Stage, bool) {
	for i, info := range registry {
		if info.name == name {
			return Stage(i), true
		}
	}
	return 0, false
}

func (s Stage) valid() bool {
	return s >= 0 && int(s) < len(registry)
}

func (s Stage) String() string {
	if !s.valid() {
		return "unknown"
	}
	return registry[s].name
}

// Kind returns how the stage's commands are shown.
func (s Stage) Kind() Kind {
	if !s.valid() {
		return Normal
	}
	return registry[s].kind
}

// Required reports whether an installable manifest is expected to define the stage.
func (s Stage) Required() bool {
	return s.valid() && registry[s].required
}

// MarshalText encodes the stage by name for JSON and YAML output.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
