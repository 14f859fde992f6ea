// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/typeset/typeset/cmd/typeset"

func main() {
	cmd.Execute()
}
