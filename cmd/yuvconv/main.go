// Command yuvconv converts raw video frames between interleaved RGB
// and planar YUV from the command line. Input and output are headerless
// frame streams with tight strides (I420/I422/I444 plane order for
// planar YUV), the layout produced by e.g. ffmpeg's rawvideo muxer.
//
// Usage:
//
//	yuvconv toyuv -w 1920 -h 1080 [options] <input>   RGB frames → planar YUV
//	yuvconv torgb -w 1920 -h 1080 [options] <input>   planar YUV frames → RGB
//	yuvconv pack -w 1920 -h 1080 [options] <input>    planar YUV → YUY2-family
//	yuvconv unpack -w 1920 -h 1080 [options] <input>  YUY2-family → planar YUV
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepteams/yuv"
	"github.com/deepteams/yuv/internal/pool"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "toyuv":
		err = runToYUV(os.Args[2:])
	case "torgb":
		err = runToRGB(os.Args[2:])
	case "pack":
		err = runPack(os.Args[2:])
	case "unpack":
		err = runUnpack(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "yuvconv: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "yuvconv: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  yuvconv toyuv -w <width> -h <height> [options] <input>   RGB frames to planar YUV
  yuvconv torgb -w <width> -h <height> [options] <input>   planar YUV frames to RGB
  yuvconv pack -w <width> -h <height> [options] <input>    planar YUV to packed YUY2
  yuvconv unpack -w <width> -h <height> [options] <input>  packed YUY2 to planar YUV

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "yuvconv <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned (caller should not close).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// frameFlags holds the options shared by every command.
type frameFlags struct {
	width, height *int
	sub           *string
	rng           *string
	matrix        *string
	format        *string
	output        *string
}

func addFrameFlags(fs *flag.FlagSet) *frameFlags {
	return &frameFlags{
		width:  fs.Int("w", 0, "frame width in pixels"),
		height: fs.Int("h", 0, "frame height in pixels"),
		sub:    fs.String("sub", "420", "chroma subsampling: 420/422/444"),
		rng:    fs.String("range", "limited", "quantization range: limited/full"),
		matrix: fs.String("matrix", "bt601", "color matrix: bt601/bt709/bt2020/smpte240/bt470"),
		format: fs.String("format", "rgb", "pixel layout: rgb/bgr/rgba/bgra"),
		output: fs.String("o", "", `output path ("-" or empty for stdout)`),
	}
}

func (f *frameFlags) validate() error {
	if *f.width <= 0 || *f.height <= 0 {
		return fmt.Errorf("frame size required: -w and -h must be positive")
	}
	return nil
}

func parseSubsampling(s string) (yuv.Subsampling, error) {
	switch s {
	case "420":
		return yuv.Sub420, nil
	case "422":
		return yuv.Sub422, nil
	case "444":
		return yuv.Sub444, nil
	}
	return 0, fmt.Errorf("unknown subsampling %q", s)
}

func parseRange(s string) (yuv.Range, error) {
	switch strings.ToLower(s) {
	case "limited", "tv":
		return yuv.RangeLimited, nil
	case "full", "pc":
		return yuv.RangeFull, nil
	}
	return 0, fmt.Errorf("unknown range %q", s)
}

func parseMatrix(s string) (yuv.Matrix, error) {
	switch strings.ToLower(s) {
	case "bt601":
		return yuv.BT601, nil
	case "bt709":
		return yuv.BT709, nil
	case "bt2020":
		return yuv.BT2020, nil
	case "smpte240":
		return yuv.SMPTE240, nil
	case "bt470":
		return yuv.BT470, nil
	}
	return yuv.Matrix{}, fmt.Errorf("unknown matrix %q", s)
}

func parseFormat(s string) (yuv.PixelFormat, error) {
	switch strings.ToLower(s) {
	case "rgb":
		return yuv.FormatRGB, nil
	case "bgr":
		return yuv.FormatBGR, nil
	case "rgba":
		return yuv.FormatRGBA, nil
	case "bgra":
		return yuv.FormatBGRA, nil
	}
	return 0, fmt.Errorf("unknown pixel format %q", s)
}

func parsePacked(s string) (yuv.PackedFormat, error) {
	switch strings.ToLower(s) {
	case "yuyv", "yuy2":
		return yuv.FormatYUYV, nil
	case "uyvy":
		return yuv.FormatUYVY, nil
	case "yvyu":
		return yuv.FormatYVYU, nil
	case "vyuy":
		return yuv.FormatVYUY, nil
	}
	return 0, fmt.Errorf("unknown packed format %q", s)
}

// planarFrameSize returns the byte size of one planar frame and the
// chroma plane dimensions.
func planarFrameSize(w, h int, sub yuv.Subsampling) (total, cw, ch int) {
	cw = (w + 1) / 2
	ch = (h + 1) / 2
	switch sub {
	case yuv.Sub422:
		ch = h
	case yuv.Sub444:
		cw, ch = w, h
	}
	return w*h + 2*cw*ch, cw, ch
}

// planarView wires a PlanarImage over an I420/I422/I444-ordered buffer.
func planarView(buf []byte, w, h, cw, ch int) *yuv.PlanarImage[uint8] {
	return &yuv.PlanarImage[uint8]{
		Y:       buf[:w*h],
		YStride: w,
		U:       buf[w*h : w*h+cw*ch],
		UStride: cw,
		V:       buf[w*h+cw*ch:],
		VStride: cw,
		Width:   w,
		Height:  h,
	}
}

func runToYUV(args []string) error {
	fs := flag.NewFlagSet("toyuv", flag.ContinueOnError)
	ff := addFrameFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ff.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("toyuv: missing input file")
	}

	sub, err := parseSubsampling(*ff.sub)
	if err != nil {
		return err
	}
	r, err := parseRange(*ff.rng)
	if err != nil {
		return err
	}
	m, err := parseMatrix(*ff.matrix)
	if err != nil {
		return err
	}
	format, err := parseFormat(*ff.format)
	if err != nil {
		return err
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(*ff.output)
	if err != nil {
		return err
	}
	defer out.Close()

	w, h := *ff.width, *ff.height
	srcStride := w * format.Channels()
	frameSize, cw, ch := planarFrameSize(w, h, sub)

	src := pool.Get(srcStride * h)
	dst := pool.Get(frameSize)
	defer pool.Put(src)
	defer pool.Put(dst)

	for frame := 0; ; frame++ {
		if _, err := io.ReadFull(in, src); err != nil {
			if err == io.EOF {
				return nil
			}
			if err == io.ErrUnexpectedEOF {
				return fmt.Errorf("frame %d: truncated input", frame)
			}
			return err
		}
		img := planarView(dst, w, h, cw, ch)
		if err := yuv.RGBToPlanar(src, srcStride, format, img, sub, r, m); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if _, err := out.Write(dst); err != nil {
			return err
		}
	}
}

func runToRGB(args []string) error {
	fs := flag.NewFlagSet("torgb", flag.ContinueOnError)
	ff := addFrameFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ff.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("torgb: missing input file")
	}

	sub, err := parseSubsampling(*ff.sub)
	if err != nil {
		return err
	}
	r, err := parseRange(*ff.rng)
	if err != nil {
		return err
	}
	m, err := parseMatrix(*ff.matrix)
	if err != nil {
		return err
	}
	format, err := parseFormat(*ff.format)
	if err != nil {
		return err
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(*ff.output)
	if err != nil {
		return err
	}
	defer out.Close()

	w, h := *ff.width, *ff.height
	dstStride := w * format.Channels()
	frameSize, cw, ch := planarFrameSize(w, h, sub)

	src := pool.Get(frameSize)
	dst := pool.Get(dstStride * h)
	defer pool.Put(src)
	defer pool.Put(dst)

	for frame := 0; ; frame++ {
		if _, err := io.ReadFull(in, src); err != nil {
			if err == io.EOF {
				return nil
			}
			if err == io.ErrUnexpectedEOF {
				return fmt.Errorf("frame %d: truncated input", frame)
			}
			return err
		}
		img := planarView(src, w, h, cw, ch)
		if err := yuv.PlanarToRGB(img, sub, dst, dstStride, format, r, m); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if _, err := out.Write(dst); err != nil {
			return err
		}
	}
}

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	ff := addFrameFlags(fs)
	packed := fs.String("packed", "yuyv", "packed layout: yuyv/uyvy/yvyu/vyuy")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ff.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("pack: missing input file")
	}

	sub, err := parseSubsampling(*ff.sub)
	if err != nil {
		return err
	}
	pf, err := parsePacked(*packed)
	if err != nil {
		return err
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(*ff.output)
	if err != nil {
		return err
	}
	defer out.Close()

	w, h := *ff.width, *ff.height
	frameSize, cw, ch := planarFrameSize(w, h, sub)
	packedStride := (w + 1) / 2 * 4

	src := pool.Get(frameSize)
	dst := pool.Get(packedStride * h)
	defer pool.Put(src)
	defer pool.Put(dst)

	for frame := 0; ; frame++ {
		if _, err := io.ReadFull(in, src); err != nil {
			if err == io.EOF {
				return nil
			}
			if err == io.ErrUnexpectedEOF {
				return fmt.Errorf("frame %d: truncated input", frame)
			}
			return err
		}
		img := planarView(src, w, h, cw, ch)
		if err := yuv.PlanarToPacked(img, sub, dst, packedStride, pf); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if _, err := out.Write(dst); err != nil {
			return err
		}
	}
}

func runUnpack(args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ContinueOnError)
	ff := addFrameFlags(fs)
	packed := fs.String("packed", "yuyv", "packed layout: yuyv/uyvy/yvyu/vyuy")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ff.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("unpack: missing input file")
	}

	sub, err := parseSubsampling(*ff.sub)
	if err != nil {
		return err
	}
	pf, err := parsePacked(*packed)
	if err != nil {
		return err
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(*ff.output)
	if err != nil {
		return err
	}
	defer out.Close()

	w, h := *ff.width, *ff.height
	frameSize, cw, ch := planarFrameSize(w, h, sub)
	packedStride := (w + 1) / 2 * 4

	src := pool.Get(packedStride * h)
	dst := pool.Get(frameSize)
	defer pool.Put(src)
	defer pool.Put(dst)

	for frame := 0; ; frame++ {
		if _, err := io.ReadFull(in, src); err != nil {
			if err == io.EOF {
				return nil
			}
			if err == io.ErrUnexpectedEOF {
				return fmt.Errorf("frame %d: truncated input", frame)
			}
			return err
		}
		img := planarView(dst, w, h, cw, ch)
		if err := yuv.PackedToPlanar(src, packedStride, pf, img, sub); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if _, err := out.Write(dst); err != nil {
			return err
		}
	}
}
