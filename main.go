package main

import "ghreview/cmd"

func main() {
	cmd.Execute()
}
