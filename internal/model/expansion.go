package model

// Expansion describes one marked function and the two names it expanded to.
type Expansion struct {
	Preset       string
	Function     string
	Line         int
	ReadOnlyName string
	MutableName  string
}
