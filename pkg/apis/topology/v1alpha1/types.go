package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +genclient
// +genclient:nonNamespaced
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// ClusterTopology is the on-disk description of a cluster's Dom0 hosts
// and DomU guests, independent of any particular placement of the
// latter onto the former.
type ClusterTopology struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ClusterTopologySpec `json:"spec,omitempty"`
}

// ClusterTopologySpec defines the Dom0s and DomUs of a ClusterTopology.
type ClusterTopologySpec struct {
	// ClusterName is the cluster identifier carried into every derived
	// Configuration's fingerprint.
	ClusterName string `json:"clusterName"`

	Dom0s []Dom0 `json:"dom0s"`
	DomUs []DomU `json:"domUs"`
}

// Dom0 describes one physical hypervisor host.
type Dom0 struct {
	Hostname              string       `json:"hostname"`
	RAMMiB                int         `json:"ramMiB"`
	ProcessorType         string      `json:"processorType"`
	ProcessorArchitecture string      `json:"processorArchitecture"`
	ProcessorSpeedMHz     int         `json:"processorSpeedMHz"`
	ProcessorCores        int         `json:"processorCores"`
	SupportsHVM           bool        `json:"supportsHVM"`
	Disks                 []Dom0Disk  `json:"disks,omitempty"`
}

// Dom0Disk describes one physical disk attached to a Dom0.
type Dom0Disk struct {
	Device string `json:"device"`
	// Speed is the rotational speed indicator; -1 means unspecified.
	Speed int `json:"speed"`
}

// DomU describes one guest virtual machine's requirements.
type DomU struct {
	Hostname string `json:"hostname"`

	PrimaryRAMMiB int `json:"primaryRamMiB"`
	// SecondaryRAMMiB is -1 when the guest has no failover reservation.
	SecondaryRAMMiB int `json:"secondaryRamMiB"`

	RequiredCores   int    `json:"requiredCores"`
	ProcessorWeight int    `json:"processorWeight"`

	// MinProcessorType is empty when the guest has no minimum.
	MinProcessorType      string `json:"minProcessorType,omitempty"`
	MinProcessorArch      string `json:"minProcessorArch"`
	// MinProcessorSpeedMHz is -1 when the guest has no minimum.
	MinProcessorSpeedMHz int `json:"minProcessorSpeedMHz"`

	RequiresHVM bool `json:"requiresHVM"`

	Disks []DomUDisk `json:"disks,omitempty"`
}

// DomUDisk describes one logical disk attached to a DomU.
type DomUDisk struct {
	Device  string `json:"device"`
	Extents int    `json:"extents"`
	// MinSpeed is -1 when the guest has no minimum backing-disk speed.
	MinSpeed int `json:"minSpeed"`
	Weight   int `json:"weight"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// ClusterTopologyList contains a list of ClusterTopology.
type ClusterTopologyList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ClusterTopology `json:"items"`
}

// +genclient
// +genclient:nonNamespaced
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// PlacementPlan is the on-disk result of one search.Optimize run: the
// initial placement, the chosen moves, and the outcome.
type PlacementPlan struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PlacementPlanSpec   `json:"spec,omitempty"`
	Status PlacementPlanStatus `json:"status,omitempty"`
}

// PlacementPlanSpec names the ClusterTopology and initial placement the
// plan was computed against.
type PlacementPlanSpec struct {
	ClusterTopologyRef string           `json:"clusterTopologyRef"`
	InitialPlacements  []DomUPlacement  `json:"initialPlacements"`
	MinAlertLevel      string           `json:"minAlertLevel,omitempty"`
	NodeCap            int              `json:"nodeCap,omitempty"`
}

// DomUPlacement is the document-form mirror of cluster.DomUPlacement.
type DomUPlacement struct {
	DomUHostname          string              `json:"domUHostname"`
	PrimaryDom0Hostname   string              `json:"primaryDom0Hostname"`
	SecondaryDom0Hostname string              `json:"secondaryDom0Hostname,omitempty"`
	Disks                 []DomUDiskPlacement `json:"disks,omitempty"`
}

// DomUDiskPlacement is the document-form mirror of
// cluster.DomUDiskPlacement.
type DomUDiskPlacement struct {
	Device    string           `json:"device"`
	Primary   []PhysicalVolume `json:"primary,omitempty"`
	Secondary []PhysicalVolume `json:"secondary,omitempty"`
}

// PhysicalVolume is the document-form mirror of cluster.PhysicalVolume.
type PhysicalVolume struct {
	Dom0Hostname string `json:"dom0Hostname"`
	Device       string `json:"device"`
	Extents      int    `json:"extents"`
}

// PlacementPlanStatus records the outcome of running the plan's search.
type PlacementPlanStatus struct {
	Outcome       string          `json:"outcome,omitempty"`
	ExpandedNodes int             `json:"expandedNodes,omitempty"`
	Moves         []string        `json:"moves,omitempty"`
	FinalPlacements []DomUPlacement `json:"finalPlacements,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// PlacementPlanList contains a list of PlacementPlan.
type PlacementPlanList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []PlacementPlan `json:"items"`
}
