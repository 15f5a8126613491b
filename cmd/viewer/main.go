package main

import "runtime"

func init() {
	// raylib and OpenGL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	Execute()
}
