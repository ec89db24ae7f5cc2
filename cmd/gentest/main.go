// Command gentest sends an image and prompt through the generation service
// and writes the returned image as PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"codraw/internal/config"
	"codraw/internal/genai"
	"codraw/internal/raster"
)

func main() {
	imagePath := flag.String("image", "", "Path to input image (PNG, JPEG, or TIFF); blank canvas if omitted")
	prompt := flag.String("prompt", "", "Edit instruction to send")
	outPath := flag.String("out", "generated.png", "Path for the returned PNG")
	endpoint := flag.String("endpoint", "", "Generation endpoint (default from config)")
	model := flag.String("model", "", "Model name (default from config)")
	timeout := flag.Int("timeout", 0, "Request timeout in seconds (default from config)")
	width := flag.Int("width", 960, "Blank canvas width when no image is given")
	height := flag.Int("height", 540, "Blank canvas height when no image is given")
	flag.Parse()

	if *prompt == "" {
		fmt.Println("Usage: gentest -prompt <text> [-image <path>] [-out generated.png]")
		fmt.Println("The API key comes from the config file or CODRAW_API_KEY.")
		os.Exit(1)
	}

	cfg := loadConfig()
	if *endpoint != "" {
		cfg.Generation.Endpoint = *endpoint
	}
	if *model != "" {
		cfg.Generation.Model = *model
	}
	if *timeout > 0 {
		cfg.Generation.TimeoutSeconds = *timeout
	}
	if cfg.Generation.APIKey == "" {
		fmt.Fprintln(os.Stderr, "No API key: set CODRAW_API_KEY or the config file")
		os.Exit(1)
	}

	png, w, h := loadInput(*imagePath, *width, *height)
	fmt.Printf("Input: %dx%d pixels (%d bytes encoded)\n", w, h, len(png))
	fmt.Printf("Model: %s\n", cfg.Generation.Model)
	fmt.Printf("Endpoint: %s\n", cfg.Generation.Endpoint)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := genai.NewClient(cfg.Generation.Endpoint, cfg.Generation.APIKey, cfg.Generation.Timeout(), logger)

	fmt.Printf("\nSending prompt: %q\n", *prompt)
	start := time.Now()
	data, err := client.EditImage(context.Background(), cfg.Generation.Model, *prompt, png)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Received %d bytes in %s\n", len(data), time.Since(start).Round(time.Millisecond))

	img, err := raster.DecodeBytes(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Returned image does not decode: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Returned image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	out, err := raster.EncodePNG(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, out, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// loadConfig reads the user configuration, falling back to defaults when no
// file exists.
func loadConfig() *config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// loadInput returns the PNG to send, from a file or a blank canvas.
func loadInput(path string, width, height int) ([]byte, int, int) {
	if path == "" {
		frame := raster.NewCanvas(width, height)
		png, err := raster.EncodePNG(frame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode blank canvas: %v\n", err)
			os.Exit(1)
		}
		return png, width, height
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, err := raster.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	png, err := raster.EncodePNG(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	return png, bounds.Dx(), bounds.Dy()
}
