// meta/meta.go
package meta

// SEARCH_DEPTH defines the default minimax depth in plies.
const SEARCH_DEPTH = 3

// WIN_THRESHOLD defines the learned value above which a position is treated as won.
const WIN_THRESHOLD = 0.8

// LOSS_THRESHOLD defines the learned value below which a position is treated as lost.
const LOSS_THRESHOLD = 0.2

// LEARNING_RATE defines the default step size of the backward value update.
const LEARNING_RATE = 0.5

// NEUTRAL_VALUE defines the value given to a position on first sight.
const NEUTRAL_VALUE = 0.5

// MAX_MOVES caps a self-play game in plies.
const MAX_MOVES = 100

// REPORT_EVERY defines how often training progress is logged, in games.
const REPORT_EVERY = 50
