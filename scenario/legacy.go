package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Legacy game file sections.
const (
	sectionFarm     = "FARM"
	sectionBoat     = "BOAT"
	sectionCity     = "CITY"
	sectionShipment = "SHIPMENT"
)

// ParseLegacy reads the legacy map and game files into a validated Scenario.
//
// Errors:
//   - ErrMalformedLine with the file and line number.
//   - ErrUnknownHub, ErrUnknownSource and ErrInvalid from Validate.
func ParseLegacy(mapFile, gameFile io.Reader) (*Scenario, error) {
	var sc Scenario
	if err := readLines(mapFile, func(n int, line string) error {
		hub, err := parseMapLine(line)
		if err != nil {
			return fmt.Errorf("map line %d: %w", n, err)
		}
		sc.Hubs = append(sc.Hubs, hub)
		return nil
	}); err != nil {
		return nil, err
	}

	section := ""
	if err := readLines(gameFile, func(n int, line string) error {
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToUpper(line[1 : len(line)-1])
			return nil
		}
		var err error
		switch section {
		case sectionFarm:
			var src SourceSpec
			if src, err = parseFarmLine(line); err == nil {
				sc.Sources = append(sc.Sources, src)
			}
		case sectionBoat:
			var net NetworkSpec
			if net, err = parseBoatLine(line); err == nil {
				sc.Networks = append(sc.Networks, net)
			}
		case sectionCity:
			var sink SinkSpec
			if sink, err = parseCityLine(line); err == nil {
				sc.Sinks = append(sc.Sinks, sink)
			}
		case sectionShipment:
			if sc.Shipment == "" {
				sc.Shipment = line
			}
		}
		if err != nil {
			return fmt.Errorf("game line %d: %w", n, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// LoadLegacy opens and parses the legacy map and game files.
func LoadLegacy(mapPath, gamePath string) (*Scenario, error) {
	m, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to read map file: %w", err)
	}
	defer m.Close()

	g, err := os.Open(gamePath)
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to read game file: %w", err)
	}
	defer g.Close()

	return ParseLegacy(m, g)
}

// readLines calls fn with every meaningful line, whitespace removed.
func readLines(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.Join(strings.Fields(sc.Text()), "")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scenario: read: %w", err)
	}

	return nil
}

// parseMapLine reads "hub:a,b,c".
func parseMapLine(line string) (HubSpec, error) {
	name, links, _ := strings.Cut(line, ":")
	if name == "" {
		return HubSpec{}, malformed(line)
	}

	return HubSpec{Name: name, Links: splitList(links)}, nil
}

// parseFarmLine reads "owner|name|node$prod:h1,h2|node$prod:h3".
func parseFarmLine(line string) (SourceSpec, error) {
	blocks := strings.Split(line, "|")
	if len(blocks) < 2 {
		return SourceSpec{}, malformed(line)
	}
	src := SourceSpec{Owner: blocks[0], Name: blocks[1]}
	for _, b := range blocks[2:] {
		name, prod, hubs, err := parseCounted(b)
		if err != nil {
			return SourceSpec{}, err
		}
		src.Nodes = append(src.Nodes, NodeSpec{Name: name, Production: prod, Hubs: hubs})
	}

	return src, nil
}

// parseBoatLine reads "owner|name$capacity:h1,h2".
func parseBoatLine(line string) (NetworkSpec, error) {
	owner, rest, ok := strings.Cut(line, "|")
	if !ok {
		return NetworkSpec{}, malformed(line)
	}
	name, capacity, hubs, err := parseCounted(rest)
	if err != nil {
		return NetworkSpec{}, err
	}

	return NetworkSpec{Owner: owner, Name: name, Capacity: capacity, Hubs: hubs}, nil
}

// parseCityLine reads "name$demand:h1,h2".
func parseCityLine(line string) (SinkSpec, error) {
	name, demand, hubs, err := parseCounted(line)
	if err != nil {
		return SinkSpec{}, err
	}

	return SinkSpec{Name: name, Demand: demand, Hubs: hubs}, nil
}

// parseCounted reads "name$count:h1,h2".
func parseCounted(s string) (string, int, []string, error) {
	name, rest, ok := strings.Cut(s, "$")
	if !ok || name == "" {
		return "", 0, nil, malformed(s)
	}
	count, hubs, _ := strings.Cut(rest, ":")
	n, err := strconv.Atoi(count)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %q: bad count %q", ErrMalformedLine, s, count)
	}

	return name, n, splitList(hubs), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func malformed(line string) error {
	return fmt.Errorf("%w: %q", ErrMalformedLine, line)
}
