// cmd/vdevice/main.go
package main

func main() {
	Execute()
}
