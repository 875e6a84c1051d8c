// Package locality stores point and area objects keyed by their external OSM id
// and answers "which objects lie in this rectangle" without scanning every object.
//
// The spatial index is an interval index whose keys are quadtree cell ids and
// whose values are stored object ids. A rectangle query is decomposed into cell id
// ranges by a covering function; every range is looked up in the interval index
// and each match is converted back from its stored form.
//
// Results are reported range by range in the interval index's order. An object
// indexed under several cells can be reported more than once; callers that need
// each object once use UniqueInRect or dedup themselves.
package locality
