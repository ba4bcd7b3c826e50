/*
Package utils contains decorators shared by every handler chain:
panic recovery, logging, metrics, path tagging and savepoints.
*/
package utils
