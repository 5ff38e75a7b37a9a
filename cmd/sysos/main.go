package main

import "systemos/cmd/sysos/root"

func main() {
	root.Execute()
}
