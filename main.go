package main

import "valentine-backend/cmd"

func main() {
	cmd.Run()
}
