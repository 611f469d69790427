/*
Package netsim is the evaluation kernel of a compiled synchronous circuit
simulator.

A circuit is described once, through a Design: signals are declared and get
fixed slot numbers, sensitivity conditions get trigger bits, and update
functions are appended to per-region dispatch tables. Build freezes the
description into a Sim, after which evaluation is a tight loop over flat
arrays with no name lookups and no allocation.

Evaluation is split into two entry points. Settle runs the design to its
initial fixed point, iterating the combinational (settle) region until no
trigger fires, bounded by SettleIterationLimit. Step performs exactly one
evaluation in response to input changes: edge-triggered (active) logic first,
then register commits against the same trigger snapshot, so that committed
values are always computed from pre-step state. Tick, Tock and Run layer a
clock driver on top of Step.

*/
package netsim
