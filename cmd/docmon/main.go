// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/docmon/cmd/docmon/cmd"
)

func main() {
	cmd.Execute()
}
