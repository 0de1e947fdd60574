package main

import "gitlab.com/przworld-exchange/economy_core/cmd"

func main() {
	cmd.Execute()
}
