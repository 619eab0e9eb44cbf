package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the configuration for one conversion run. It is built once,
// from flags or a JSON file, and passed explicitly into the pipeline.
type Config struct {
	// Color selects color (3 channel) or grayscale (1 channel) loading.
	Color bool `json:"color"`
	// Crop is the center crop as "height,width". Values below zero disable
	// cropping and the first resized image determines the batch shape.
	Crop string `json:"crop"`
	// InputImages is a comma separated list of image paths.
	InputImages string `json:"input_images"`
	// InputImageFile is a file with one image per line; a line may also be a
	// comma separated record whose third field is the path.
	InputImageFile string `json:"input_image_file"`
	// OutputTensor is the output tensor file path.
	OutputTensor string `json:"output_tensor"`
	// Preprocess is a comma separated list of preprocess step names applied
	// in order.
	Preprocess string `json:"preprocess"`
	// ReportTime enables stage timing output, format "<type>|<prefix>".
	ReportTime string `json:"report_time"`
	// Scale resizes the shorter edge to this length; zero or below disables
	// resizing.
	Scale int `json:"scale"`
	// TextOutput writes the tensor file in text instead of binary format.
	TextOutput bool `json:"text_output"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Color: true,
		Crop:  "-1,-1",
		Scale: 256,
	}
}

// CropSize parses the crop spec into a height and width
func (c *Config) CropSize() (height, width int, err error) {
	parts := strings.Split(c.Crop, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("crop must be \"height,width\", got %q", c.Crop)
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid crop height %q: %w", parts[0], err)
	}
	width, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid crop width %q: %w", parts[1], err)
	}
	return height, width, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputImages == "" && c.InputImageFile == "" {
		return fmt.Errorf("either input_images or input_image_file must be set")
	}

	if c.InputImages != "" && c.InputImageFile != "" {
		return fmt.Errorf("input_images and input_image_file are mutually exclusive")
	}

	if c.OutputTensor == "" {
		return fmt.Errorf("output_tensor must be set")
	}

	if _, _, err := c.CropSize(); err != nil {
		return err
	}

	return nil
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
