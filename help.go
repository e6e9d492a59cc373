package main

import "fmt"

// showAssistantHelp displays the assistant's capabilities
func showAssistantHelp() {
	fmt.Println("Aura - Available Commands:")

	fmt.Println("  Application Management:")
	fmt.Println("  \"open <app>\"          - Launch an application")
	fmt.Println("  \"close <app>\"         - Close an application")
	fmt.Println("  \"search for <name>\"   - Find files by name")

	fmt.Println("")
	fmt.Println("  System Control:")
	fmt.Println("  \"take a screenshot\"   - Capture the screen")
	fmt.Println("  \"system info\"         - Show host status")

	fmt.Println("")
	fmt.Println("  General:")
	fmt.Println("  \"hello\"               - Greet the assistant")
	fmt.Println("  \"help\"                - Show this help")

	fmt.Println("")
	fmt.Println("  Shell:")
	fmt.Println("  :suggest <partial>    - Suggest commands for partial input")
	fmt.Println("  :stats                - Show learning statistics")
	fmt.Println("  :prefs                - Show learned preferences")
	fmt.Println("  :history <term>       - Search past interactions")
	fmt.Println("  :help                 - Show this help message")
	fmt.Println("  exit, quit            - Leave the assistant")

	fmt.Println("")
	fmt.Println("Aura learns from your commands and gets better over time.")
}
