// Command mailsieve scans messages and trains the Bayes classifier
// against a mailsieve daemon.
package main

func main() {
	execute()
}
