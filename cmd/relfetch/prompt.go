package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
)

// errNoSelection is returned when the user quits the prompt.
var errNoSelection = errors.New("no asset selected")

// askSelectAsset lists assets on out and reads a 1-based choice from in.
// Invalid input asks again; an empty line, "q" or end of input quits.
func askSelectAsset(in io.Reader, out io.Writer, prompt string, assets []release.Asset) (release.Asset, error) {
	if len(assets) == 0 {
		return release.Asset{}, fmt.Errorf("release has no assets")
	}

	for i, a := range assets {
		fmt.Fprintf(out, "%3d) %s\n", i+1, a.Name)
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s [1-%d, q to quit]: ", prompt, len(assets))

		line, err := reader.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer == "" || strings.EqualFold(answer, "q") {
			return release.Asset{}, errNoSelection
		}

		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(assets) {
			return assets[n-1], nil
		}
		fmt.Fprintf(out, "Invalid choice %q\n", answer)

		if err != nil {
			return release.Asset{}, errNoSelection
		}
	}
}
