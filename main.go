package main

import "team-task-hub.com/team-task-hub/cmd"

func main() {
	cmd.Execute()
}
