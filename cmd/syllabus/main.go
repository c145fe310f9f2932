package main

import "syllabus/internal/cli"

func main() {
	cli.Execute()
}
