/*
 * doc.go, part of openqube
 *
 * Copyright 2024 The openqube developers
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

/*Package openqube evaluates contracted Gaussian-type orbital basis sets on
spatial grids, producing molecular-orbital amplitude or electron-density
scalar fields for visualization and analysis.



	**Capabilities**


    Represents a basis set as an append-only sequence of shells
	(S, P, SP, D, D5 and the higher angular-momentum families), each
	holding contracted Gaussian primitives centered on an atom.

    Normalizes contraction coefficients analytically for the S, P, D and
	D5 families and builds the offset tables that map shells to basis
	functions and molecular-orbital coefficients. Higher families advance
	the bookkeeping but are not normalized; a warning is logged for them.

    Evaluates any molecular orbital, or the electron density from a
	density matrix, over every point of a volumetric grid, concurrently,
	with the grid held under an exclusive write lock until the whole
	field is committed.

    Completion is signaled through a token the caller can await or poll,
	and a running evaluation can be cancelled.

The cube subpackage provides a concrete volumetric grid. The cubeio
subpackage persists computed fields in a compressed format, and cubeplot
renders slices of them. Basis sets are expected to be populated by external
file-format readers through the builder methods of GaussianSet; no parsing
happens in this package.

All lengths handled by the evaluation routines are in bohr. Grid positions
are given in Å and converted internally (1 bohr = 0.529177249 Å).
*/
package openqube
