package log

import (
	"fmt"
)

// Println println
func Println(msg ...interface{}) {
	fmt.Println(msg...)
}

// Printf printf
func Printf(format string, args ...interface{}) {
	if format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Printf(format, args...)
}
