// Command imgmerge compares two or three raster images using the
// winimerge engine and prints the result.
//
// Usage:
//
//	imgmerge compare [options] <a> <b> [c]   Run the diff pipeline, print a summary
//	imgmerge diffmap [options] <a> <b> [c] <out.png>   Write the diff map to out.png
//	imgmerge info <a>                        Print image dimensions and page count
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/WinMerge/winimerge"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compare":
		err = runCompare(os.Args[2:])
	case "diffmap":
		err = runDiffmap(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "imgmerge: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "imgmerge: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  imgmerge compare [options] <a> <b> [c]             Compare 2 or 3 images, print a summary
  imgmerge diffmap [options] <a> <b> [c] <out.png>    Write the block-level diff map
  imgmerge info <a>                                   Print image dimensions and page count

Run "imgmerge <command> -h" for command-specific options.
`)
}

func commonFlags(fs *flag.FlagSet) (blockSize *int, threshold *float64, insDel *string) {
	blockSize = fs.Int("block-size", 8, "comparison block size in pixels")
	threshold = fs.Float64("threshold", 0, "Euclidean RGBA color distance treated as equal")
	insDel = fs.String("insdel", "none", "insertion/deletion detection: none, vertical, horizontal")
	return
}

func insDelMode(s string) (winimerge.InsertionDeletionMode, error) {
	switch s {
	case "none", "":
		return winimerge.InsertionDeletionNone, nil
	case "vertical":
		return winimerge.InsertionDeletionVertical, nil
	case "horizontal":
		return winimerge.InsertionDeletionHorizontal, nil
	default:
		return winimerge.InsertionDeletionNone, fmt.Errorf("unknown -insdel value %q (want none, vertical, or horizontal)", s)
	}
}

func openBuffer(paths []string, blockSize int, threshold float64, mode winimerge.InsertionDeletionMode) (*winimerge.DiffBuffer, error) {
	settings := winimerge.NewSettings()
	settings.SetBlockSize(blockSize)
	settings.SetColorDistanceThreshold(threshold)
	settings.SetInsertionDeletionMode(mode)

	buf := winimerge.NewDiffBuffer(winimerge.NewDefaultCodec(), settings)
	if err := buf.Open(paths); err != nil {
		return nil, err
	}
	return buf, nil
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	blockSize, threshold, insDel := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 && fs.NArg() != 3 {
		return fmt.Errorf("compare: expected 2 or 3 image paths\nUsage: imgmerge compare [options] <a> <b> [c]")
	}
	mode, err := insDelMode(*insDel)
	if err != nil {
		return err
	}
	buf, err := openBuffer(fs.Args(), *blockSize, *threshold, mode)
	if err != nil {
		return err
	}

	stat := buf.Stat()
	fmt.Printf("panes: %d\n", buf.NPanes())
	fmt.Printf("diffs: %d (conflicts: %d)\n", buf.DiffCount(), buf.ConflictCount())
	if buf.NPanes() == 3 {
		fmt.Printf("  1stOnly: %d\n  2ndOnly: %d\n  3rdOnly: %d\n  conflict: %d\n", stat.D1, stat.D2, stat.D3, stat.DetC)
	}
	for i := 0; i < buf.DiffCount(); i++ {
		info, err := buf.DiffInfoAt(i)
		if err != nil {
			return err
		}
		fmt.Printf("  [%d] op=%s rect={%d,%d,%d,%d}\n", i, info.Op, info.Rect.Left, info.Rect.Top, info.Rect.Right, info.Rect.Bottom)
	}
	return nil
}

func runDiffmap(args []string) error {
	fs := flag.NewFlagSet("diffmap", flag.ContinueOnError)
	blockSize, threshold, insDel := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 && fs.NArg() != 4 {
		return fmt.Errorf("diffmap: expected 2 or 3 image paths plus an output path\nUsage: imgmerge diffmap [options] <a> <b> [c] <out.png>")
	}
	mode, err := insDelMode(*insDel)
	if err != nil {
		return err
	}
	inputs := fs.Args()[:fs.NArg()-1]
	outPath := fs.Args()[fs.NArg()-1]

	buf, err := openBuffer(inputs, *blockSize, *threshold, mode)
	if err != nil {
		return err
	}
	img0, err := buf.GetImage(0)
	if err != nil {
		return err
	}
	diffMap := buf.GetDiffMap(img0.Width(), img0.Height())

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return winimerge.NewDefaultCodec().Encode(f, outPath, diffMap)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("info: expected exactly one image path\nUsage: imgmerge info <a>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	codec := winimerge.NewDefaultCodec()
	mp, ok, err := codec.DecodeMultipage(f, fs.Arg(0))
	if err != nil {
		return err
	}
	if ok && mp != nil && len(mp.Pages) > 0 {
		fmt.Printf("pages: %d\n", len(mp.Pages))
		for i, page := range mp.Pages {
			fmt.Printf("  page %d: %dx%d\n", i, page.Width(), page.Height())
		}
		return nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	img, _, err := codec.Decode(f)
	if err != nil {
		return err
	}
	fmt.Printf("pages: 1\n  page 0: %dx%d\n", img.Width(), img.Height())
	return nil
}
