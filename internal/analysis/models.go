package analysis

import "errors"

var (
	// ErrBitWidth is returned when the decoded bit count disagrees with the requested width.
	ErrBitWidth = errors.New("decoded bitwidth does not match specified bitwidth")
	// ErrNoBits is returned when no column matches the data bit label.
	ErrNoBits = errors.New("no data bit columns found")
)

// CodeResult holds a decoded ADC transfer curve, one entry per input value.
type CodeResult struct {
	Var    []float64 // swept input
	Code   []float64
	DNL    []float64 // code step to the next input, NaN for the last entry; nil when not computed
	AbsDNL []float64
	INL    []float64 // ideal input for each code; nil when not computed
	Bits   int       // number of bits found or decoded per sample
	Errors []string  // non-fatal problems met while decoding
}

// RankedStep is one entry of the worst-DNL ranking.
type RankedStep struct {
	Var float64
	DNL float64
}

// Peak is a local extremum found in a comparator trace.
type Peak struct {
	Index      int
	Positive   bool
	Height     float64
	Prominence float64
}

// NoiseResult holds the sampled transfer curve of an input-referred noise sweep
// and the moments of its step density.
type NoiseResult struct {
	Bins  []float64 // swept input per block
	Mean  []float64 // mean sampled output per block
	StepX []float64 // midpoints between successive bins
	StepY []float64 // successive differences of Mean
	Mu    float64   // weighted mean of StepX
	Sigma float64   // weighted standard deviation of StepX
}
