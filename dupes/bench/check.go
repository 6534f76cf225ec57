package bench

import (
	"github.com/lguimbarda/dupbench/dupes/detect"
	"github.com/lguimbarda/dupbench/dupes/gen"
)

// Verdict is one detector's answer for a generated array.
type Verdict struct {
	Detector string `json:"detector"`
	Result   bool   `json:"result"`
}

// Check generates one array and asks every detector about it, without
// timing anything. It returns the array, each detector's verdict, and
// detect.ErrDisagreement if the verdicts differ.
func Check(c Case, seed uint32) ([]int, []Verdict, error) {
	items, err := gen.New(seed).Generate(c.Length, c.Policy)
	if err != nil {
		return nil, nil, err
	}

	detectors := detect.All[int]()
	verdicts := make([]Verdict, len(detectors))
	for i, d := range detectors {
		verdicts[i] = Verdict{Detector: d.Name(), Result: d.Fn(items)}
	}
	_, err = detect.AgreeAmong(items, detectors)
	return items, verdicts, err
}
