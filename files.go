/*
 * files.go, part of gomolymod.
 *
 * Copyright 2025 The gomolymod authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package molymod

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/spatial/r3"
)

//XYZRead reads the topology from an XYZ file. Files ending in .gz are
//transparently decompressed. Atom ids are assigned 1-based in file
//order; positions stay in the units of the file. Only the first frame
//of a multi-frame file is read.
func XYZRead(name string) (*Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("molymod: opening %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}
	top, err := XYZReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("molymod: reading %s: %w", name, err)
	}
	return top, nil
}

//XYZReadFrom reads an XYZ-format topology from r. The format is the
//usual one: an atom count line, a comment line, then one
//"Symbol X Y Z" line per atom.
func XYZReadFrom(r io.Reader) (*Topology, error) {
	buf := bufio.NewReader(r)
	line, err := buf.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("ill-formatted XYZ file: bad atom count line %q", strings.TrimSpace(line))
	}
	if natoms <= 0 {
		return nil, ErrNoAtoms
	}
	if _, err := buf.ReadString('\n'); err != nil && err != io.EOF {
		return nil, err //the comment line, which we don't care about
	}
	atoms := make([]*Atom, 0, natoms)
	for i := 0; i < natoms; i++ {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("ill-formatted XYZ file: line %d has %d fields", i+3, len(fields))
		}
		var pos [3]float64
		for k := 0; k < 3; k++ {
			pos[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("ill-formatted XYZ file: line %d: %w", i+3, err)
			}
		}
		atoms = append(atoms, &Atom{
			ID:     i + 1,
			Symbol: fields[0],
			Pos:    r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]},
		})
	}
	return NewTopology(atoms)
}
