/*Package interval implements interval-union operations over sets of
  genomic coordinates, used to report how much of each chromosome ends up
  covered by committed locally-collinear blocks.
  (Note the 'union'.  Overlapping intervals are merged, not tracked
  separately; it is currently necessary to use another package when that is not
  the desired behavior.)
  It assumes every position fits in a PosType, currently defined as int32.
*/
package interval
