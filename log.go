package gokachu

import (
	"fmt"
	"log"

	"github.com/esimov/gokachu/utils"
)

// logStatus prints a colored status line. A nil logger discards it.
func logStatus(l *log.Logger, msgType utils.MessageType, format string, args ...any) {
	if l == nil {
		return
	}
	prefix := "[INFO] "
	if msgType == utils.ErrorMessage {
		prefix = "[ERROR] "
	}
	l.Print(utils.DecorateText(prefix+fmt.Sprintf(format, args...), msgType))
}
