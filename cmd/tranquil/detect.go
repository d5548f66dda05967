package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/tranquil-trails/config"
	"github.com/nvr-ai/tranquil-trails/inference"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/report"
	"github.com/nvr-ai/tranquil-trails/service"
	"github.com/nvr-ai/tranquil-trails/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [image]",
		Short: "Run a crop detection model over images",
		Long: `Detect runs the selected crop model over one image or every jpg, jpeg and png
file of a directory and prints a markdown report.

Examples:
  # Detect objects on a chili plant photo
  tranquil detect --model chili leaf.jpg

  # Detect every image of a directory and keep the annotated copies
  tranquil detect --model padi --dir ./field --out ./annotated`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDetectCmd,
	}

	cmd.Flags().StringP("model", "m", string(models.CropPaddy), "Crop model: paddy|padi, chili|cabai, onion|bawang")
	cmd.Flags().StringP("dir", "d", "", "Directory of images to process")
	cmd.Flags().StringP("out", "o", "",
		"Write the annotated image to this file, or into this directory with --dir")

	return cmd
}

// detectRequest is the validated input of the detect command.
type detectRequest struct {
	crop models.Crop
	file string
	dir  string
	out  string
}

func parseDetectRequest(cmd *cobra.Command, args []string) (detectRequest, error) {
	var req detectRequest

	model, _ := cmd.Flags().GetString("model")
	crop, err := models.ParseCrop(model)
	if err != nil {
		return req, err
	}
	req.crop = crop
	req.dir, _ = cmd.Flags().GetString("dir")
	req.out, _ = cmd.Flags().GetString("out")
	if len(args) == 1 {
		req.file = args[0]
	}

	switch {
	case req.dir == "" && req.file == "":
		return req, errors.New("an image path or --dir is required")
	case req.dir != "" && req.file != "":
		return req, errors.New("an image path and --dir are mutually exclusive")
	case req.file != "" && !util.HasSupportedExtension(req.file):
		return req, errors.Errorf("%s: only jpg, jpeg and png images are supported", req.file)
	}
	return req, nil
}

func runDetectCmd(cmd *cobra.Command, args []string) error {
	req, err := parseDetectRequest(cmd, args)
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := loadImages(req)
	if err != nil {
		return err
	}

	if err := inference.InitializeRuntime(cfg.Runtime.Library); err != nil {
		return err
	}
	defer inference.DestroyRuntime()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	set, err := inference.LoadDetectorSet(ctx, cfg.Runtime.Provider, detectorConfigs(cfg, req.crop), inference.BuildONNX)
	if err != nil {
		return err
	}
	defer set.Close()

	detection := service.NewDetection(set, log)
	entries := make([]report.Entry, 0, len(files))
	for _, f := range files {
		entry := report.Entry{Path: f.Path, Crop: req.crop}

		result, err := detection.Detect(ctx, req.crop, f.Data)
		if err != nil {
			entry.Err = err
			entries = append(entries, entry)
			continue
		}

		entry.Width = result.Original.Width
		entry.Height = result.Original.Height
		entry.Elapsed = result.Elapsed
		entry.Boxes = result.Boxes
		entries = append(entries, entry)

		if req.out != "" {
			if err := writeAnnotated(req, f.Path, result.Annotated.Data); err != nil {
				return err
			}
		}
	}

	return report.WriteDetections(cmd.OutOrStdout(), entries)
}

func loadImages(req detectRequest) ([]util.ImageFile, error) {
	if req.dir != "" {
		files, err := util.LoadDirectoryImageFiles(req.dir)
		if err != nil {
			return nil, errors.Wrapf(err, "loading images from %s", req.dir)
		}
		return files, nil
	}

	f, err := util.LoadImageFile(req.file)
	if err != nil {
		return nil, err
	}
	return []util.ImageFile{f}, nil
}

// detectorConfigs keeps only the selected crop so the other models are not loaded.
func detectorConfigs(cfg *config.Config, crop models.Crop) []inference.DetectorConfig {
	for _, d := range cfg.Detectors() {
		if d.Crop == crop {
			return []inference.DetectorConfig{d}
		}
	}
	return nil
}

// annotatedPath returns where the annotated copy of src is written.
func annotatedPath(req detectRequest, src string) string {
	if req.dir == "" {
		return req.out
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(req.out, base+"_annotated.jpg")
}

func writeAnnotated(req detectRequest, src string, data []byte) error {
	path := annotatedPath(req, src)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // annotated images are not sensitive
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
