package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param        *Parameter
	plainDefault float64
	hasDefault   bool
}

// New starts a parameter with a 0-1 range
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the plain min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value in the plain range. It may be called
// before or after Range.
func (b *Builder) Default(value float64) *Builder {
	b.plainDefault = value
	b.hasDefault = true
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the parameter holding its default value
func (b *Builder) Build() *Parameter {
	if b.hasDefault {
		b.param.DefaultValue = b.param.Normalize(b.plainDefault)
	}
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
