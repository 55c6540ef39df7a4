// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"

	"github.com/mlnoga/labelmorph/internal/logw"
	"github.com/mlnoga/labelmorph/internal/morph"
	"github.com/mlnoga/labelmorph/internal/rest"
	"github.com/mlnoga/labelmorph/internal/stats"
	"github.com/mlnoga/labelmorph/internal/volume"
)

const version = "0.1.0"

var totalMiBs=memory.TotalMemory()/1024/1024

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var out     = flag.String("out", "out.lmv", "save output volume to `file`")
var logF    = flag.String("log", "%auto", "save log output to `file`. `%auto` replaces suffix of output file with .log")
var params  = flag.String("params", "", "load flag defaults from YAML `file` before applying command line flags")

var threads = flag.Int64("threads", 0, "number of worker threads, 0=physical CPU cores")
var bgOnly  = flag.Bool("bgonly", false, "dilate background voxels only, passing existing labels through unchanged")

var preview      = flag.String("preview", "", "save colored z-slice preview of the output volume to `file` (.jpg or .tif)")
var previewZ     = flag.Int64("previewZ", -1, "z slice for the preview, -1=middle slice")
var previewWidth = flag.Int64("previewWidth", 0, "scale preview to given width in pixels, 0=native size")

var synthSx      = flag.Int64("sx", 128, "synthetic volume x extent")
var synthSy      = flag.Int64("sy", 128, "synthetic volume y extent")
var synthSz      = flag.Int64("sz", 128, "synthetic volume z extent")
var synthWidth   = flag.Int64("width", 4, "synthetic volume voxel width in bytes, one of 1, 2, 4, 8")
var synthLabels  = flag.Int64("labels", 4, "number of distinct labels in synthetic volumes")
var synthDensity = flag.Float64("density", 50, "percentage of non-background voxels in random synthetic volumes")
var synthCell    = flag.Int64("cell", 0, "cell size for blocky synthetic volumes, 0=uniform random voxels")
var synthSeed    = flag.Int64("seed", 0, "random seed for synthetic volumes, 0=time based")

var chroot = flag.String("chroot", "", "change filesystem root to `dir` before serving (requires root)")
var setuid = flag.Int64("setuid", -1, "drop to this user id before serving, -1=keep")

func main() {
	start:=time.Now()
	flag.Usage=func() {
		fmt.Printf(`Labelmorph Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (dilate|erode|census|synth|serve|legal|version) [in.lmv]

Commands:
  dilate  Dilate the labels of the input volume with a 3x3x3 structuring element
  erode   Erode the labels of the input volume with a 3x3x3 structuring element
  census  Show label statistics of the input volume
  synth   Generate a synthetic label volume for testing and benchmarking
  serve   Serve the morphology REST API on port 8080
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Apply YAML parameter file defaults before the explicit flags
	if err:=applyParamsFile(*params); err!=nil {
		logw.Fatalf("Error loading parameter file '%s': %s\n", *params, err.Error())
	}

	// Initialize logging to file in addition to stdout, if selected
	if *logF=="%auto" {
		if *out!="" {
			*logF=strings.TrimSuffix(*out, filepath.Ext(*out))+".log"
		} else {
			*logF=""
		}
	}
	if *logF!="" {
		if err:=logw.AlsoToFile(*logF); err!=nil {
			logw.Fatalf("Unable to open logfile '%s'\n", *logF)
		}
	}
	defer logw.Close()

	// Enable CPU profiling if flagged
	if *cpuprofile!="" {
		f, err:=os.Create(*cpuprofile)
		if err!=nil {
			logw.Fatalf("Could not create CPU profile: %s\n", err.Error())
		}
		defer f.Close()
		if err:=pprof.StartCPUProfile(f); err!=nil {
			logw.Fatalf("Could not start CPU profile: %s\n", err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	if *threads<=0 {
		*threads=int64(cpuid.CPU.PhysicalCores)
		if *threads<1 { *threads=1 }
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	switch args[0] {
	case "dilate", "erode":
		if len(args)<2 {
			logw.Fatalf("%s: missing input volume filename\n", args[0])
		}
		logw.Printf("Running on %s with %d threads, %d MiB physical memory\n", cpuid.CPU.BrandName, *threads, totalMiBs)
		runMorph(args[0], args[1])

	case "census":
		if len(args)<2 {
			logw.Fatalf("census: missing input volume filename\n")
		}
		runCensus(args[1])

	case "synth":
		runSynth()

	case "serve":
		if err:=rest.Sandbox(*chroot, int(*setuid)); err!=nil {
			logw.Fatalf("Error sandboxing server: %s\n", err.Error())
		}
		rest.Serve()

	case "legal":
		logw.Printf("%s\n", legal)

	case "version":
		logw.Printf("labelmorph version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		logw.Printf("Unknown command '%s'\n", args[0])
		flag.Usage()
		os.Exit(-1)
	}

	// Write memory profile if flagged
	if *memprofile!="" {
		f, err:=os.Create(*memprofile)
		if err!=nil {
			logw.Fatalf("Could not create memory profile: %s\n", err.Error())
		}
		defer f.Close()
		if err:=pprof.WriteHeapProfile(f); err!=nil {
			logw.Fatalf("Could not write memory profile: %s\n", err.Error())
		}
	}

	logw.Printf("Done after %v\n", time.Since(start))
	logw.Sync()
}

// Loads the input, applies the selected operator and stores the result,
// with an optional colored slice preview
func runMorph(op, fileName string) {
	in, err:=volume.ReadFromFile(fileName)
	if err!=nil {
		logw.Fatalf("Error reading '%s': %s\n", fileName, err.Error())
	}
	logw.Printf("Loaded %s volume from %s\n", in.DimensionsToString(), fileName)

	start:=time.Now()
	var outVol *volume.Volume
	if op=="dilate" {
		outVol, err=morph.Dilate(in, *bgOnly, int(*threads))
	} else {
		outVol, err=morph.Erode(in, int(*threads))
	}
	if err!=nil {
		logw.Fatalf("Error applying %s: %s\n", op, err.Error())
	}
	logw.Printf("Applied %s in %v\n", op, time.Since(start))

	if *out!="" {
		if err:=outVol.WriteToFile(*out); err!=nil {
			logw.Fatalf("Error writing '%s': %s\n", *out, err.Error())
		}
		logw.Printf("Wrote %s volume to %s\n", outVol.DimensionsToString(), *out)
	}
	writePreview(outVol)
}

// Prints the label census of the given volume file
func runCensus(fileName string) {
	v, err:=volume.ReadFromFile(fileName)
	if err!=nil {
		logw.Fatalf("Error reading '%s': %s\n", fileName, err.Error())
	}
	census, err:=stats.NewCensus(v)
	if err!=nil {
		logw.Fatalf("Error computing census: %s\n", err.Error())
	}
	logw.Printf("%s: %s\n", fileName, census.String())
}

// Saves a colored z-slice preview of the volume if flagged
func writePreview(v *volume.Volume) {
	if *preview=="" { return }
	z:=int(*previewZ)
	if z<0 { z=v.Sz/2 }
	if err:=v.WriteSliceToFile(*preview, z, int(*previewWidth)); err!=nil {
		logw.Fatalf("Error writing preview '%s': %s\n", *preview, err.Error())
	}
	logw.Printf("Wrote preview of slice z=%d to %s\n", z, *preview)
}
