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


// Package logw is a singleton log writer. It writes to stdout, and
// optionally mirrors into a file. No prefixes, no forced newlines.
package logw

import (
	"bufio"
	"fmt"
	"os"
)

var file   *bufio.Writer
var fileOS *os.File

// Enables mirroring log output into the given file
func AlsoToFile(fileName string) (err error) {
	if err=Close(); err!=nil { return err }
	fileOS, err=os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err!=nil { return err }
	file=bufio.NewWriter(fileOS)
	return nil
}

// Flushes and closes the mirror file, if any
func Close() (err error) {
	if file==nil { return nil }
	if err=file.Flush(); err!=nil { return err }
	err=fileOS.Close()
	file, fileOS=nil, nil
	return err
}

func Printf(format string, args ...interface{}) (n int, err error) {
	n, err=fmt.Printf(format, args...)
	if err!=nil || file==nil { return n, err }
	return fmt.Fprintf(file, format, args...)
}

func Println(args ...interface{}) (n int, err error) {
	n, err=fmt.Println(args...)
	if err!=nil || file==nil { return n, err }
	return fmt.Fprintln(file, args...)
}

// Logs the message and terminates the process
func Fatalf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
	if file!=nil {
		fmt.Fprintf(file, format, args...)
		file.Flush()
		fileOS.Close()
	}
	os.Exit(1)
}

// Flushes pending log output to the mirror file
func Sync() {
	if file==nil { return }
	file.Flush()
	fileOS.Sync()
}
