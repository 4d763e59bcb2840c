package main

import "kanji-cards/internal/cli"

func main() {
	cli.Execute()
}
