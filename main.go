package main

import "company-oa-system/cmd/server"

func main() {
	server.Init()
	server.Run()
}
