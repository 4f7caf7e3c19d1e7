package relational

import "github.com/Conqxeror/veloxx/dataframe"

// Append concatenates other's rows after df's. A thin wrapper kept
// alongside Filter/Join/GroupBy/Pivot so every L5 relational operator has
// a symmetrical home in this package, even though the row-concatenation
// logic itself lives on DataFrame (§4.2) rather than needing any
// expression evaluation.
func Append(df, other *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	return df.Append(other)
}
