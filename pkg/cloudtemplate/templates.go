package cloudtemplate

// These are the CloudFormation templates for the four provisionable shapes.
// When making edits here ensure the whitespace is correct.

const controlGroupTemplate = `---
AWSTemplateFormatVersion: '2010-09-09'
Description: 'Control group shared object storage'

Resources:
  Bucket:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: {{.BucketName}}
      Tags:
        - Key: Name
          Value: {{.JurisdictionName}}

Outputs:
  BucketName:
    Description: The control group's shared object bucket
    Value: !Ref Bucket
    Export:
      Name: !Sub "${AWS::StackName}-bucket"
`

const tierVPCTemplate = `---
AWSTemplateFormatVersion: '2010-09-09'
Description: 'Tier VPC: {{.Label}}'

Resources:
  VPC{{.Label}}:
    Type: AWS::EC2::VPC
    Properties:
      CidrBlock: {{.CIDR}}
      EnableDnsSupport: true
      EnableDnsHostnames: true
      Tags:
        - Key: Name
          Value: !Sub '${AWS::StackName}-{{.Label}}'

  InternetGateway{{.Label}}:
    Type: AWS::EC2::InternetGateway

  VPCGatewayAttachment{{.Label}}:
    Type: AWS::EC2::VPCGatewayAttachment
    Properties:
      InternetGatewayId: !Ref InternetGateway{{.Label}}
      VpcId: !Ref VPC{{.Label}}

  RouteTable{{.Label}}:
    Type: AWS::EC2::RouteTable
    Properties:
      VpcId: !Ref VPC{{.Label}}
      Tags:
        - Key: Name
          Value: !Sub '${AWS::StackName}-rt-{{.Label}}'

  Route{{.Label}}:
    DependsOn: VPCGatewayAttachment{{.Label}}
    Type: AWS::EC2::Route
    Properties:
      RouteTableId: !Ref RouteTable{{.Label}}
      DestinationCidrBlock: 0.0.0.0/0
      GatewayId: !Ref InternetGateway{{.Label}}

Outputs:
  Vpc{{.Label}}Id:
    Value: !Ref VPC{{.Label}}
    Export:
      Name: {{.JurisdictionID}}-vpc-{{.LabelLower}}
  RouteTable{{.Label}}Id:
    Value: !Ref RouteTable{{.Label}}
    Export:
      Name: {{.JurisdictionID}}-rt-{{.LabelLower}}
`

const clusterNetworkTemplate = `---
AWSTemplateFormatVersion: '2010-09-09'
Description: 'Cluster network: subnets and load balancers'

Resources:
{{- range $i, $s := .Subnets}}
  Subnet{{$i}}:
    Type: AWS::EC2::Subnet
    Properties:
      VpcId: !ImportValue {{$.VPCImport}}
      AvailabilityZone: {{$s.AZ}}
      CidrBlock: {{$s.CIDR}}
      MapPublicIpOnLaunch: true
      Tags:
        - Key: Name
          Value: !Sub '${AWS::StackName}-subnet-{{$i}}'

  Subnet{{$i}}RouteTableAssociation:
    Type: AWS::EC2::SubnetRouteTableAssociation
    Properties:
      SubnetId: !Ref Subnet{{$i}}
      RouteTableId: !ImportValue {{$.RouteTableImport}}
{{- end}}

  ControllerELBSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: controller ELB
      VpcId: !ImportValue {{.VPCImport}}
      SecurityGroupIngress:
        - IpProtocol: tcp
          FromPort: 443
          ToPort: 443
          CidrIp: 0.0.0.0/0

  ControllerELB:
    Type: AWS::ElasticLoadBalancing::LoadBalancer
    Properties:
      LoadBalancerName: {{.JurisdictionID}}-ctl-elb
      Scheme: internet-facing
      Subnets:
        - !Ref Subnet0
      SecurityGroups:
        - !Ref ControllerELBSecurityGroup
      Listeners:
        - LoadBalancerPort: '443'
          InstancePort: '443'
          Protocol: TCP
      Tags:
        - Key: Name
          Value: {{.ClusterName}}_controller
{{if .DedicatedEtcd}}
  EtcdELBSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: etcd ELB
      VpcId: !ImportValue {{.VPCImport}}
      SecurityGroupIngress:
        - IpProtocol: tcp
          FromPort: 2379
          ToPort: 2379
          CidrIp: {{.HostsCIDR}}

  EtcdELB:
    Type: AWS::ElasticLoadBalancing::LoadBalancer
    Properties:
      LoadBalancerName: {{.JurisdictionID}}-etcd-elb
      Scheme: internal
      Subnets:
        - !Ref Subnet0
      SecurityGroups:
        - !Ref EtcdELBSecurityGroup
      Listeners:
        - LoadBalancerPort: '2379'
          InstancePort: '2379'
          Protocol: TCP
      Tags:
        - Key: Name
          Value: {{.ClusterName}}_etcd
{{end}}
Outputs:
{{- range $i, $s := .Subnets}}
  Subnet{{$i}}Id:
    Value: !Ref Subnet{{$i}}
    Export:
      Name: {{$.JurisdictionID}}-subnet-{{$i}}
{{- end}}
  ControllerELBDNSName:
    Value: !GetAtt ControllerELB.DNSName
    Export:
      Name: {{.JurisdictionID}}-controller-elb
{{if .DedicatedEtcd}}
  EtcdELBDNSName:
    Value: !GetAtt EtcdELB.DNSName
    Export:
      Name: {{.JurisdictionID}}-etcd-elb
{{end}}
`

const clusterNodesTemplate = `---
AWSTemplateFormatVersion: '2010-09-09'
Description: 'Cluster nodes: security groups, IAM roles, instances, autoscaling'

Resources:
  ControllerSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: controller nodes
      VpcId: !ImportValue {{.VPCImport}}

  WorkerSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: worker nodes
      VpcId: !ImportValue {{.VPCImport}}
{{if .DedicatedEtcd}}
  EtcdSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: etcd nodes
      VpcId: !ImportValue {{.VPCImport}}
{{end}}
{{range .IngressRules}}
  Ingress{{.Name}}:
    Type: AWS::EC2::SecurityGroupIngress
    Properties:
      GroupId: {{.TargetGroupRef}}
      IpProtocol: {{.Protocol}}
      FromPort: {{.FromPort}}
      ToPort: {{.ToPort}}
      {{.SourceKey}}: {{.SourceValue}}
{{end}}
  ControllerRole:
    Type: AWS::IAM::Role
    Properties:
      AssumeRolePolicyDocument:
        Version: '2012-10-17'
        Statement:
          - Effect: Allow
            Principal: {Service: ec2.amazonaws.com}
            Action: sts:AssumeRole
      Policies:
        - PolicyName: controller
          PolicyDocument:
            Version: '2012-10-17'
            Statement:
              - Effect: Allow
                Action: ['ec2:*', 'elasticloadbalancing:*']
                Resource: '*'
              - Effect: Allow
                Action: ['kms:Decrypt']
                Resource: {{.KMSKeyArn}}

  WorkerRole:
    Type: AWS::IAM::Role
    Properties:
      AssumeRolePolicyDocument:
        Version: '2012-10-17'
        Statement:
          - Effect: Allow
            Principal: {Service: ec2.amazonaws.com}
            Action: sts:AssumeRole
      Policies:
        - PolicyName: worker
          PolicyDocument:
            Version: '2012-10-17'
            Statement:
              - Effect: Allow
                Action: ['ec2:Describe*', 'ec2:AttachVolume', 'ec2:DetachVolume']
                Resource: '*'
              - Effect: Allow
                Action: ['kms:Decrypt']
                Resource: {{.KMSKeyArn}}
              - Effect: Allow
                Action: ['ecr:GetDownloadUrlForLayer', 'ecr:BatchGetImage', 'ecr:GetAuthorizationToken']
                Resource: '*'
{{range $i, $ip := .ControllerIPs}}
  ControllerInstance{{$i}}:
    Type: AWS::EC2::Instance
    Properties:
      ImageId: {{$.ControllerAMI}}
      InstanceType: {{$.ControllerInstanceType}}
      SubnetId: !ImportValue {{$.Subnet0Import}}
      PrivateIpAddress: {{$ip}}
      SecurityGroupIds: [!Ref ControllerSecurityGroup]
      UserData: {{index $.ControllerUserdatas $i}}
      Tags:
        - Key: Name
          Value: !Sub "${AWS::StackName}-instance-controller-{{$ip}}"
{{end}}
{{if .DedicatedEtcd}}
{{range $i, $ip := .EtcdIPs}}
  EtcdInstance{{$i}}:
    Type: AWS::EC2::Instance
    Properties:
      ImageId: {{$.EtcdAMI}}
      InstanceType: {{$.EtcdInstanceType}}
      SubnetId: !ImportValue {{$.Subnet0Import}}
      PrivateIpAddress: {{$ip}}
      SecurityGroupIds: [!Ref EtcdSecurityGroup]
      UserData: {{index $.EtcdUserdatas $i}}
      Tags:
        - Key: Name
          Value: !Sub "${AWS::StackName}-instance-etcd-{{$ip}}"
{{end}}
{{end}}
  WorkerLaunchConfiguration:
    Type: AWS::AutoScaling::LaunchConfiguration
    Properties:
      ImageId: {{.WorkerAMI}}
      InstanceType: {{.WorkerInstanceType}}
      SecurityGroups: [!Ref WorkerSecurityGroup]
      UserData: {{.WorkerUserdata}}

  WorkerAutoScalingGroup:
    Type: AWS::AutoScaling::AutoScalingGroup
    Properties:
      LaunchConfigurationName: !Ref WorkerLaunchConfiguration
      MinSize: '{{.InitialWorkers}}'
      MaxSize: '{{.InitialWorkers}}'
      DesiredCapacity: '{{.InitialWorkers}}'
      VPCZoneIdentifier:
{{range .SubnetImports}}        - !ImportValue {{.}}
{{end}}
  NodeStatusCheckAlarm:
    Type: AWS::CloudWatch::Alarm
    Properties:
      AlarmDescription: EC2 status check failed
      Namespace: AWS/EC2
      MetricName: StatusCheckFailed_System
      Statistic: Minimum
      Period: 60
      EvaluationPeriods: 2
      Threshold: 0
      ComparisonOperator: GreaterThanThreshold
      AlarmActions:
        - !Sub "arn:${AWS::Partition}:automate:${AWS::Region}:ec2:recover"

Outputs:
  ControllerSecurityGroupId:
    Value: !Ref ControllerSecurityGroup
    Export:
      Name: {{.JurisdictionID}}-sg-controller
  WorkerSecurityGroupId:
    Value: !Ref WorkerSecurityGroup
    Export:
      Name: {{.JurisdictionID}}-sg-worker
{{if .DedicatedEtcd}}
  EtcdSecurityGroupId:
    Value: !Ref EtcdSecurityGroup
    Export:
      Name: {{.JurisdictionID}}-sg-etcd
{{end}}
{{range $i, $ip := .ControllerIPs}}
  ControllerInstance{{$i}}Id:
    Value: !Ref ControllerInstance{{$i}}
    Export:
      Name: {{$.JurisdictionID}}-instance-controller-{{$i}}
{{end}}
{{if .DedicatedEtcd}}
{{range $i, $ip := .EtcdIPs}}
  EtcdInstance{{$i}}Id:
    Value: !Ref EtcdInstance{{$i}}
    Export:
      Name: {{$.JurisdictionID}}-instance-etcd-{{$i}}
{{end}}
{{end}}
`
