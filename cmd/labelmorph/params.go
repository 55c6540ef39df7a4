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

	"gopkg.in/yaml.v3"
)

// Loads flag defaults from a YAML file of flagName: value pairs.
// Flags given explicitly on the command line keep their value;
// an empty filename is a no-op.
func applyParamsFile(fileName string) error {
	if fileName=="" { return nil }

	data, err:=os.ReadFile(fileName)
	if err!=nil { return err }

	values:=map[string]string{}
	if err:=yaml.Unmarshal(data, &values); err!=nil { return err }

	explicit:=map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name]=true })

	for name, value:=range values {
		if explicit[name] { continue }
		if flag.Lookup(name)==nil {
			return fmt.Errorf("unknown flag '%s'", name)
		}
		if err:=flag.Set(name, value); err!=nil {
			return fmt.Errorf("flag '%s': %w", name, err)
		}
	}
	return nil
}
