/*
Copyright © 2025 the IcePost authors.
This file is part of IcePost.

IcePost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IcePost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IcePost.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command icepost is a command-line interface for icing-simulation
// post-processing.
package main

import (
	"fmt"
	"os"

	"github.com/icingtools/icepost/icepostutil"
)

func main() {
	if err := icepostutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
