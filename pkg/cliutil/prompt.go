package cliutil

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PromptLine displays a prompt and reads a full line from stdin, trimmed
// of surrounding whitespace including the newline -- the same helper
// pkg/cli.PromptLine provides.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ConfirmYN prompts the user with a yes/no question and returns true on
// "y"/"yes" (case-insensitive).
func ConfirmYN(prompt string) bool {
	answer, err := PromptLine(prompt)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
