package main

import "github.com/storefront-api/cmd"

func main() {
	cmd.Execute()
}
