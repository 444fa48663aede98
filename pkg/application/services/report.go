package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// BoxGroup is one box's allocation records, ordered for display.
type BoxGroup struct {
	Box     string
	Records []entities.AllocationRecord
}

// ReceivingBoxGroup is one box's receiving lines, ordered for display.
type ReceivingBoxGroup struct {
	Box   string
	Lines []entities.ReceivingLine
}

// ProjectAllocations groups records by box and orders everything for
// human-readable output: boxes ascending, and within a box by set name
// then product name, case-insensitively. Pure transformation; safe to
// call repeatedly on the same input.
func ProjectAllocations(records []entities.AllocationRecord) []BoxGroup {
	byBox := make(map[string][]entities.AllocationRecord)
	for _, record := range records {
		byBox[record.Box] = append(byBox[record.Box], record)
	}

	groups := make([]BoxGroup, 0, len(byBox))
	for box, boxRecords := range byBox {
		sort.SliceStable(boxRecords, func(i, j int) bool {
			return displayLess(boxRecords[i].SetName, boxRecords[i].ProductName,
				boxRecords[j].SetName, boxRecords[j].ProductName)
		})
		groups = append(groups, BoxGroup{Box: box, Records: boxRecords})
	}
	sort.Slice(groups, func(i, j int) bool { return boxLess(groups[i].Box, groups[j].Box) })
	return groups
}

// ProjectReceivingLines groups receiving lines the same way
// ProjectAllocations groups allocation records.
func ProjectReceivingLines(lines []entities.ReceivingLine) []ReceivingBoxGroup {
	byBox := make(map[string][]entities.ReceivingLine)
	for _, line := range lines {
		byBox[line.Box] = append(byBox[line.Box], line)
	}

	groups := make([]ReceivingBoxGroup, 0, len(byBox))
	for box, boxLines := range byBox {
		sort.SliceStable(boxLines, func(i, j int) bool {
			return displayLess(boxLines[i].SetName, boxLines[i].ProductName,
				boxLines[j].SetName, boxLines[j].ProductName)
		})
		groups = append(groups, ReceivingBoxGroup{Box: box, Lines: boxLines})
	}
	sort.Slice(groups, func(i, j int) bool { return boxLess(groups[i].Box, groups[j].Box) })
	return groups
}

func displayLess(setA, nameA, setB, nameB string) bool {
	sa, sb := strings.ToLower(setA), strings.ToLower(setB)
	if sa != sb {
		return sa < sb
	}
	return strings.ToLower(nameA) < strings.ToLower(nameB)
}

// boxLess orders box identifiers numerically when both parse as
// integers, falling back to a string compare. Boxes are numbered in
// practice but the identifier is opaque.
func boxLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
