// Command qotd runs the Quote-of-the-Day server.
package main

func main() {
	Execute()
}
