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


package rest

import (
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlnoga/labelmorph/internal/morph"
	"github.com/mlnoga/labelmorph/internal/stats"
	"github.com/mlnoga/labelmorph/internal/volume"
)

// Serves the morphology API. Requests reference volume files below the
// current working directory; use Sandbox to confine the process first.
func Serve() {
	r:=gin.Default()
	api:=r.Group("/api")
	{
		v1:=api.Group("/v1")
		{
			v1.GET ("/ping",   getPing)
			v1.POST("/dilate", postDilate)
			v1.POST("/erode",  postErode)
			v1.POST("/census", postCensus)
		}
	}
	r.Run() // listen and serve on 0.0.0.0:8080
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

type postMorphArgs struct {
	FileName       string `json:"fileName"`
	OutFileName    string `json:"outFileName"`
	BackgroundOnly bool   `json:"backgroundOnly"`
	Threads        int    `json:"threads"`
}

// Returns true if a path is considered safe, i.e. not an absolute path,
// and doesn't contain the ".." characters to change to a parent directory
func isPathAllowed(p string) bool {
	if filepath.IsAbs(p) { return false }          // relative paths only
	if strings.Contains(p, "..") { return false }  // no going outside the tree
	return true
}

func postDilate(c *gin.Context) {
	runMorph(c, "dilate", func(v *volume.Volume, args *postMorphArgs) (*volume.Volume, error) {
		return morph.Dilate(v, args.BackgroundOnly, args.Threads)
	})
}

func postErode(c *gin.Context) {
	runMorph(c, "erode", func(v *volume.Volume, args *postMorphArgs) (*volume.Volume, error) {
		return morph.Erode(v, args.Threads)
	})
}

// Shared request handling for the two operators: bind arguments, load the
// input volume, apply, store the result, and stream a plain text log
func runMorph(c *gin.Context, name string, apply func(v *volume.Volume, args *postMorphArgs) (*volume.Volume, error)) {
	var args postMorphArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isPathAllowed(args.FileName) || !isPathAllowed(args.OutFileName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename outside current directory tree"})
		return
	}
	if args.Threads<=0 {
		args.Threads=runtime.NumCPU()
	}

	logWriter:=c.Writer
	logWriter.Header().Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	in, err:=volume.ReadFromFile(args.FileName)
	if err!=nil {
		fmt.Fprintf(logWriter, "error reading %s: %s\n", args.FileName, err.Error())
		return
	}
	fmt.Fprintf(logWriter, "Loaded %s volume from %s\n", in.DimensionsToString(), args.FileName)

	start:=time.Now()
	out, err:=apply(in, &args)
	if err!=nil {
		fmt.Fprintf(logWriter, "error applying %s: %s\n", name, err.Error())
		return
	}
	fmt.Fprintf(logWriter, "Applied %s with %d threads in %v\n", name, args.Threads, time.Since(start))

	if err:=out.WriteToFile(args.OutFileName); err!=nil {
		fmt.Fprintf(logWriter, "error writing %s: %s\n", args.OutFileName, err.Error())
		return
	}
	fmt.Fprintf(logWriter, "Wrote %s\n", args.OutFileName)
	logWriter.(http.Flusher).Flush()
}

type postCensusArgs struct {
	FileName string `json:"fileName"`
}

func postCensus(c *gin.Context) {
	var args postCensusArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isPathAllowed(args.FileName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename outside current directory tree"})
		return
	}

	v, err:=volume.ReadFromFile(args.FileName)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	census, err:=stats.NewCensus(v)
	if err!=nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, census)
}
