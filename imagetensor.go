// Package imagetensor converts a batch of on-disk images into a single packed
// float tensor file for a downstream numeric-model pipeline.
//
// Each image flows through a fixed sequence of stages: decode, shorter-edge
// resize, center crop, per-pixel normalization, and planar packing. The
// resulting per-image vectors are concatenated into one NCHW float batch and
// written out once, in either binary or text form.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		imagetensor "github.com/menta2k/image-to-tensor"
//		"github.com/menta2k/image-to-tensor/pkg/config"
//	)
//
//	func main() {
//		cfg := config.Default()
//		cfg.InputImages = "cat.jpg,dog.png"
//		cfg.Crop = "224,224"
//		cfg.Preprocess = "subtract128"
//		cfg.OutputTensor = "batch.pb"
//
//		if err := imagetensor.Convert(cfg); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Processing (pkg/processing): image loading, resizing and center cropping
// 2. Preprocess (pkg/preprocess): the normalization step vocabulary and pixel packing
// 3. Tensor (pkg/tensor): batch accumulation and serialization
// 4. Report (pkg/report): optional per-stage timing output
//
// All images in a batch must resolve to the same cropped height and width; the
// first image fixes the batch shape and any later mismatch aborts the run
// before anything is written.
package imagetensor

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-to-tensor/internal/utils"
	"github.com/menta2k/image-to-tensor/pkg/config"
	"github.com/menta2k/image-to-tensor/pkg/preprocess"
	"github.com/menta2k/image-to-tensor/pkg/processing"
	"github.com/menta2k/image-to-tensor/pkg/report"
	"github.com/menta2k/image-to-tensor/pkg/tensor"
)

// Version of the image-to-tensor library
const Version = "1.0.0"

// Converter runs the conversion pipeline for one validated configuration
type Converter struct {
	cfg       *config.Config
	processor *processing.Processor
	reporter  *report.Reporter
	params    preprocess.Params
}

// New creates a Converter from a configuration. It validates the
// configuration, the preprocess step list and the report spec, so every
// configuration error surfaces before any image is touched.
func New(cfg *config.Config) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps, err := preprocess.ParseSteps(cfg.Preprocess)
	if err != nil {
		return nil, err
	}

	reporter, err := report.Parse(cfg.ReportTime)
	if err != nil {
		return nil, err
	}

	return &Converter{
		cfg:       cfg,
		processor: processing.NewProcessor(),
		reporter:  reporter,
		params:    preprocess.ParamsFromSteps(steps),
	}, nil
}

// Convert is a convenience function that builds a Converter and runs it
func Convert(cfg *config.Config) error {
	c, err := New(cfg)
	if err != nil {
		return err
	}
	return c.Run()
}

// Run converts every input image in order and writes the output tensor file.
// Any failure aborts the run and nothing is written.
func (c *Converter) Run() error {
	paths, err := c.inputPaths()
	if err != nil {
		return err
	}

	cropHeight, cropWidth, err := c.cfg.CropSize()
	if err != nil {
		return err
	}

	channels := 3
	if !c.cfg.Color {
		channels = 1
	}
	batch := tensor.NewBatch(channels)

	for _, path := range paths {
		log.Printf("Converting %s", path)
		values, height, width, err := c.ConvertOne(path, cropHeight, cropWidth)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := batch.Append(values, height, width); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	start := time.Now()
	data := batch.Encode(c.cfg.TextOutput)
	c.reporter.Report("image_preprocess", time.Since(start), "pack", "us")

	if err := os.WriteFile(c.cfg.OutputTensor, data, 0644); err != nil {
		return fmt.Errorf("failed to write output tensor: %w", err)
	}
	return nil
}

// ConvertOne runs the per-image stages for a single path and returns the
// packed vector together with its effective height and width.
func (c *Converter) ConvertOne(path string, cropHeight, cropWidth int) ([]float32, int, int, error) {
	img, err := c.processor.LoadImage(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to load image: %w", err)
	}
	if !c.cfg.Color {
		img = imaging.Grayscale(img)
	}

	start := time.Now()
	resized := c.processor.ResizeShorterEdge(img, c.cfg.Scale)
	cropped, height, width, err := c.processor.CenterCrop(resized, cropHeight, cropWidth)
	if err != nil {
		return nil, 0, 0, err
	}
	values := preprocess.ToVector(cropped, c.params, c.cfg.Color)
	c.reporter.Report("image_preprocess", time.Since(start), "convert", "us")

	return values, height, width, nil
}

func (c *Converter) inputPaths() ([]string, error) {
	switch {
	case c.cfg.InputImages != "":
		return strings.Split(c.cfg.InputImages, ","), nil
	case c.cfg.InputImageFile != "":
		return utils.ReadImageList(c.cfg.InputImageFile)
	}
	return nil, fmt.Errorf("either input_images or input_image_file must be set")
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
