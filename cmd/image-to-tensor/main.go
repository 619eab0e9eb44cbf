package main

import (
	"flag"
	"log"

	imagetensor "github.com/menta2k/image-to-tensor"
	"github.com/menta2k/image-to-tensor/pkg/config"
)

func main() {
	flags := config.Default()
	var configPath string

	flag.StringVar(&configPath, "config", "", "optional JSON config file; flags set on the command line override it")
	flag.BoolVar(&flags.Color, "color", flags.Color, "if set, load images in color")
	flag.StringVar(&flags.Crop, "crop", flags.Crop, "the center cropped height and width; a value below zero disables cropping")
	flag.StringVar(&flags.InputImages, "input_images", "", "comma separated image paths")
	flag.StringVar(&flags.InputImageFile, "input_image_file", "", "file containing input images, one per line; a 3-field comma separated record contributes its third field")
	flag.StringVar(&flags.OutputTensor, "output_tensor", "", "the output tensor file in NCHW")
	flag.StringVar(&flags.Preprocess, "preprocess", "", "preprocess steps applied in sequence, comma separated: subtract128, normalize, mean, std, bgrtorgb")
	flag.StringVar(&flags.ReportTime, "report_time", "", "report stage times, format <type>|<prefix>; the only valid type is json")
	flag.IntVar(&flags.Scale, "scale", flags.Scale, "scale the shorter edge to the given value; zero or below disables resizing")
	flag.BoolVar(&flags.TextOutput, "text_output", false, "write the output in text format")
	flag.Parse()

	cfg := flags
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		// Flags given explicitly on the command line win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "color":
				loaded.Color = flags.Color
			case "crop":
				loaded.Crop = flags.Crop
			case "input_images":
				loaded.InputImages = flags.InputImages
			case "input_image_file":
				loaded.InputImageFile = flags.InputImageFile
			case "output_tensor":
				loaded.OutputTensor = flags.OutputTensor
			case "preprocess":
				loaded.Preprocess = flags.Preprocess
			case "report_time":
				loaded.ReportTime = flags.ReportTime
			case "scale":
				loaded.Scale = flags.Scale
			case "text_output":
				loaded.TextOutput = flags.TextOutput
			}
		})
		cfg = loaded
	}

	if err := imagetensor.Convert(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
