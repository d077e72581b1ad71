// Package scenario loads shipping scenarios and turns them into a
// topology.Topology.
//
// Two formats are understood:
//
//   - YAML, decoded into Scenario by Parse or Load.
//   - The legacy pair of text files (a map and a game file), read by
//     ParseLegacy or LoadLegacy into the same Scenario.
//
// The legacy map file holds one hub per line followed by the hubs it touches:
//
//	Java: Bali, Sumatra
//	Bali: Lombok
//
// The game file is split into [FARM], [BOAT], [CITY] and [SHIPMENT] sections:
//
//	[FARM]
//	ann|ricefield|paddy$3:Java|terrace$1:Bali,Lombok
//	[BOAT]
//	ann|ferry$2:Java,Bali,Lombok
//	[CITY]
//	Denpasar$4:Bali
//	[SHIPMENT]
//	ricefield
//
// Lines starting with '#' and blank lines are ignored in both files.
//
// Errors:
//   - ErrUnknownHub if a network, sink or supply node names an undeclared hub.
//   - ErrUnknownSource if the shipment names no declared source.
//   - ErrMalformedLine for legacy lines that cannot be split into fields.
//   - ErrInvalid for every other validation failure.
package scenario
