package main

import "github.com/gjwjdansnu-del/SHyST-calculator-sub000/cmd"

func main() {
	cmd.Execute()
}
