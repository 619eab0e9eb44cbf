// Package preprocess implements the fixed vocabulary of per-pixel
// normalization steps and the conversion of a cropped image into a flat
// channel-major float vector.
package preprocess

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Step is one named preprocess step from the fixed vocabulary.
type Step int

const (
	// StepSubtract128 centers pixel values around zero: mean 128, no scaling.
	StepSubtract128 Step = iota
	// StepNormalize divides pixel values by 255.
	StepNormalize
	// StepMean subtracts the per-channel dataset means.
	StepMean
	// StepStd divides by the per-channel dataset standard deviations.
	StepStd
	// StepSwapChannels reverses the blue/red channel read order.
	StepSwapChannels
)

// String returns the step name as accepted by ParseSteps.
func (s Step) String() string {
	switch s {
	case StepSubtract128:
		return "subtract128"
	case StepNormalize:
		return "normalize"
	case StepMean:
		return "mean"
	case StepStd:
		return "std"
	case StepSwapChannels:
		return "bgrtorgb"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// ParseSteps parses a comma separated list of step names. An empty spec means
// no steps; an unrecognized name is an error.
func ParseSteps(spec string) ([]Step, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, ",")
	steps := make([]Step, 0, len(parts))
	for _, name := range parts {
		switch name {
		case "subtract128":
			steps = append(steps, StepSubtract128)
		case "normalize":
			steps = append(steps, StepNormalize)
		case "mean":
			steps = append(steps, StepMean)
		case "std":
			steps = append(steps, StepStd)
		case "bgrtorgb":
			steps = append(steps, StepSwapChannels)
		default:
			return nil, fmt.Errorf("unsupported preprocess step %q: supported steps are subtract128, normalize, mean, std, bgrtorgb", name)
		}
	}
	return steps, nil
}

// Params holds the per-channel normalization parameters accumulated from a
// step sequence. Channel index 0 is blue, 1 green, 2 red.
type Params struct {
	Normalize    [3]float32
	Mean         [3]float32
	Std          [3]float32
	SwapChannels bool
}

// DefaultParams returns the identity parameters
func DefaultParams() Params {
	return Params{
		Normalize: [3]float32{1, 1, 1},
		Std:       [3]float32{1, 1, 1},
	}
}

// ParamsFromSteps folds an ordered step sequence into parameters. Steps are
// applied in order and a later step overwrites only the fields it names.
func ParamsFromSteps(steps []Step) Params {
	p := DefaultParams()
	for _, s := range steps {
		switch s {
		case StepSubtract128:
			p.Mean = [3]float32{128, 128, 128}
			p.Std = [3]float32{1, 1, 1}
			p.Normalize = [3]float32{1, 1, 1}
		case StepNormalize:
			p.Normalize = [3]float32{255, 255, 255}
		case StepMean:
			p.Mean = [3]float32{0.406, 0.456, 0.485}
		case StepStd:
			p.Std = [3]float32{0.225, 0.224, 0.229}
		case StepSwapChannels:
			p.SwapChannels = true
		}
	}
	return p
}

// ToVector converts an image into a flat float32 vector in planar
// channel-major order: the full blue plane, then green, then red (a single
// plane in grayscale mode). Each value is (src/normalize - mean) / std for
// its channel. The decoded buffer stores red first, so output channel 0 reads
// the blue byte unless the swap step reversed the read order.
func ToVector(img image.Image, p Params, color bool) []float32 {
	grid := toNRGBA(img)
	bounds := grid.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	size := width * height

	if !color {
		values := make([]float32, size)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				o := grid.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				values[y*width+x] = normalizeValue(grid.Pix[o], p, 0)
			}
		}
		return values
	}

	// Byte offsets within the RGBA quad for output channels 0 and 2.
	c0, c2 := 2, 0
	if p.SwapChannels {
		c0, c2 = 0, 2
	}

	values := make([]float32, 3*size)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := grid.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			i := y*width + x
			values[i] = normalizeValue(grid.Pix[o+c0], p, 0)
			values[size+i] = normalizeValue(grid.Pix[o+1], p, 1)
			values[2*size+i] = normalizeValue(grid.Pix[o+c2], p, 2)
		}
	}
	return values
}

func normalizeValue(v uint8, p Params, k int) float32 {
	return (float32(v)/p.Normalize[k] - p.Mean[k]) / p.Std[k]
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	return imaging.Clone(img)
}
