package qsim

// Internal hooks for the external test package.
var (
	SampleShots = sampleShots
	Cumulative  = cumulative
	SampleIndex = sampleIndex
)
