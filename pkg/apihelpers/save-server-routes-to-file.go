package apihelpers

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/gin-gonic/gin"
)

// WriteRoutesToFile lists the registered routes, sorted by path, as "METHOD\tPATH" lines.
// Only used in debug mode, so a failure is logged and otherwise ignored.
func WriteRoutesToFile(router *gin.Engine, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		slog.Error("could not create routes file", slog.String("filename", filename), slog.String("error", err.Error()))
		return
	}
	defer file.Close()

	routes := router.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	w := bufio.NewWriter(file)
	for _, route := range routes {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", route.Method, route.Path); err != nil {
			slog.Error("could not write routes file", slog.String("error", err.Error()))
			return
		}
	}
	if err := w.Flush(); err != nil {
		slog.Error("could not write routes file", slog.String("error", err.Error()))
	}
}
