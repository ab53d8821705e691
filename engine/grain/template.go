package grain

// templateImpl is the implementation of the Template interface.
type templateImpl struct {
	name          string
	defaultHidden bool
}

// Template is the archetype a spawn pass instantiates grains from. The
// spawner treats the template as opaque; it only needs the default hidden
// state for new grains and a name for diagnostics.
type Template interface {
	// Name returns the archetype name, used in log output only.
	//
	// Returns:
	//   - string: the template name
	Name() string

	// DefaultHidden returns whether grains created from this template start
	// excluded from render snapshots.
	//
	// Returns:
	//   - bool: true if new grains start hidden
	DefaultHidden() bool
}

var _ Template = &templateImpl{}

// NewTemplate creates a new Template with the given archetype name and any
// provided options applied.
//
// Parameters:
//   - name: the archetype name
//   - opts: variadic list of TemplateBuilderOption functions to configure the template
//
// Returns:
//   - Template: a new Template instance
func NewTemplate(name string, opts ...TemplateBuilderOption) Template {
	t := &templateImpl{
		name:          name,
		defaultHidden: false,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *templateImpl) Name() string {
	return t.name
}

func (t *templateImpl) DefaultHidden() bool {
	return t.defaultHidden
}

// TemplateBuilderOption is a function that configures a Template instance during construction.
type TemplateBuilderOption func(*templateImpl)

// WithDefaultHidden is an option builder that sets whether grains created
// from the template start hidden.
//
// Parameters:
//   - hidden: true if new grains start hidden
//
// Returns:
//   - TemplateBuilderOption: a function that applies the hidden option to a templateImpl
func WithDefaultHidden(hidden bool) TemplateBuilderOption {
	return func(t *templateImpl) {
		t.defaultHidden = hidden
	}
}
